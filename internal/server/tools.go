package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// detectProperties returns the schema properties shared by every tool.
func detectProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file (PNG, JPEG or GIF)",
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Binarization level applied to the normalized texture map, 0-255 (default: 150)",
		},
		"dilations": map[string]interface{}{
			"type":        "integer",
			"description": "Number of 3x3 dilation passes (default: 5)",
		},
		"erosions": map[string]interface{}{
			"type":        "integer",
			"description": "Number of 3x3 erosion passes (default: 5)",
		},
	}
}

// withProperties adds extra schema properties to the shared set.
func withProperties(extra map[string]interface{}) map[string]interface{} {
	props := detectProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "plate_detect",
			Description: "Locate the licence plate in a photo of a vehicle. Returns the inclusive pixel bounding box of the largest high-texture region, its label, pixel count and most common colours.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"colors": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant plate colours to report, 0 to skip (default: 3)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_crop",
			Description: "Detect the licence plate and return the cropped plate as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for the crop (default: 1.0)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_read",
			Description: "Detect the licence plate, crop it and read its characters with OCR. Engines are tried in a fixed order until one returns text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor applied to the crop before OCR (default: 2.0)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_annotate",
			Description: "Detect the licence plate and return the image with the plate outlined, as base64-encoded PNG. Optionally saves the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline colour as #RRGGBB (default: #00FF00)",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline width in pixels (default: 2)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "If set, the annotated PNG is also written here",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
