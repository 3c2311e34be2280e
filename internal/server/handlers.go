package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/plate-finder/internal/detection"
	plateimg "github.com/ironsheep/plate-finder/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plate_detect", "plate_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "plate_detect":
		return s.handlePlateDetect(ctx, args)
	case "plate_crop":
		return s.handlePlateCrop(ctx, args)
	case "plate_read":
		return s.handlePlateRead(ctx, args)
	case "plate_annotate":
		return s.handlePlateAnnotate(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// detectArgs is embedded by every tool. Nil tuning fields keep the server's
// configured values.
type detectArgs struct {
	Path      string   `json:"path"`
	Threshold *float64 `json:"threshold"`
	Dilations *int     `json:"dilations"`
	Erosions  *int     `json:"erosions"`
}

// config merges the per-call overrides into the server configuration.
func (a detectArgs) config(base detection.Config) detection.Config {
	cfg := base
	if a.Threshold != nil {
		cfg.Threshold = *a.Threshold
	}
	if a.Dilations != nil {
		cfg.Dilations = *a.Dilations
	}
	if a.Erosions != nil {
		cfg.Erosions = *a.Erosions
	}
	return cfg
}

// DetectResult is returned by plate_detect.
type DetectResult struct {
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Box         detection.BoundingBox `json:"bounding_box"`
	PlateLabel  int                   `json:"plate_label"`
	PlatePixels int                   `json:"plate_pixels"`
	Components  int                   `json:"component_count"`

	Colors []plateimg.ColorFrequency `json:"plate_colors,omitempty"`
}

type plateDetectArgs struct {
	detectArgs
	Colors *int `json:"colors"`
}

// detect loads the image at a.Path and runs the pipeline on it.
func (s *Server) detect(ctx context.Context, a detectArgs) (image.Image, *detection.Result, error) {
	if a.Path == "" {
		return nil, nil, errors.New("path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	ch, err := s.cache.LoadChannels(a.Path)
	if err != nil {
		return nil, nil, err
	}

	p := detection.NewPipeline(a.config(s.config), s.log.WithField("path", a.Path))
	res, err := p.Run(ctx, ch)
	if err != nil {
		return nil, nil, err
	}
	return img, res, nil
}

func (s *Server) handlePlateDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a plateDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	colors := 3
	if a.Colors != nil {
		colors = *a.Colors
	}
	img, res, err := s.detect(ctx, a.detectArgs)
	if err != nil {
		return nil, err
	}
	palette, err := plateimg.PlateColors(img, res.Box, colors)
	if err != nil {
		return nil, err
	}
	return &DetectResult{
		Colors:      palette,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Box:         res.Box,
		PlateLabel:  res.Plate,
		PlatePixels: res.Components.Count(res.Plate),
		Components:  len(res.Components),
	}, nil
}

type plateCropArgs struct {
	detectArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handlePlateCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a plateCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, res, err := s.detect(ctx, a.detectArgs)
	if err != nil {
		return nil, err
	}
	return plateimg.EncodePlate(img, res.Box, a.Scale)
}

// ReadResult is returned by plate_read.
type ReadResult struct {
	Box      detection.BoundingBox `json:"bounding_box"`
	Text     string                `json:"text"`
	Raw      string                `json:"raw"`
	EngineID string                `json:"engine_id"`
	Attempts int                   `json:"attempts"`
}

func (s *Server) handlePlateRead(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a plateCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.recognizer == nil {
		return nil, errors.New("OCR is not configured")
	}
	if a.Scale == 0 {
		a.Scale = 2.0
	}
	img, res, err := s.detect(ctx, a.detectArgs)
	if err != nil {
		return nil, err
	}
	plate, err := plateimg.CropPlate(img, res.Box, a.Scale)
	if err != nil {
		return nil, err
	}
	reading, err := s.recognizer.Read(ctx, plate)
	if err != nil {
		return nil, err
	}
	return &ReadResult{
		Box:      res.Box,
		Text:     reading.Text,
		Raw:      reading.Raw,
		EngineID: reading.EngineID,
		Attempts: reading.Attempts,
	}, nil
}

type plateAnnotateArgs struct {
	detectArgs
	Color      string `json:"color"`
	Thickness  int    `json:"thickness"`
	OutputPath string `json:"output_path"`
}

// AnnotateResult is returned by plate_annotate.
type AnnotateResult struct {
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Box         detection.BoundingBox `json:"bounding_box"`
	ImageBase64 string                `json:"image_base64"`
	MimeType    string                `json:"mime_type"`
	SavedTo     string                `json:"saved_to,omitempty"`
}

func (s *Server) handlePlateAnnotate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a plateAnnotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = plateimg.DefaultBoxColor
	}
	if a.Thickness == 0 {
		a.Thickness = 2
	}
	img, res, err := s.detect(ctx, a.detectArgs)
	if err != nil {
		return nil, err
	}

	out := plateimg.Annotate(img, res.Box, a.Color, a.Thickness)
	if a.OutputPath != "" {
		if err := plateimg.SaveImage(a.OutputPath, out); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode annotated image: %w", err)
	}
	return &AnnotateResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Box:         res.Box,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		SavedTo:     a.OutputPath,
	}, nil
}
