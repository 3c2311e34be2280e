// Package server implements the MCP (Model Context Protocol) server for
// licence plate detection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - plate_detect: Bounding box, label and pixel count of the plate region
//   - plate_crop: The plate cut out as base64 PNG
//   - plate_read: Plate characters read by the configured OCR engine
//   - plate_annotate: The input image with the plate outlined
//
// Every tool takes a path and may override threshold, dilations and erosions
// for a single call.
//
// # Image Caching
//
// Decoded images and their split colour channels are cached by path for the
// lifetime of the server, so repeated calls on one image decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.Options{Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal(err)
//	}
package server
