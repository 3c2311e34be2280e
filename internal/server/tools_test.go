package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"plate_detect",
		"plate_crop",
		"plate_read",
		"plate_annotate",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("GetToolDefinitions returned %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}
			for _, name := range []string{"path", "threshold", "dilations", "erosions"} {
				if _, ok := props[name]; !ok {
					t.Errorf("missing shared property %s", name)
				}
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", tool.InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_ExtraProperties(t *testing.T) {
	tests := []struct {
		tool  string
		props []string
	}{
		{"plate_detect", []string{"colors"}},
		{"plate_crop", []string{"scale"}},
		{"plate_read", []string{"scale"}},
		{"plate_annotate", []string{"color", "thickness", "output_path"}},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			for _, p := range tt.props {
				if _, ok := props[p]; !ok {
					t.Errorf("missing property %s", p)
				}
			}
		})
	}

	// Extra properties must not leak into the shared set.
	detect := toolMap["plate_detect"].InputSchema["properties"].(map[string]interface{})
	if _, ok := detect["scale"]; ok {
		t.Error("plate_detect should not have a scale property")
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(Options{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
