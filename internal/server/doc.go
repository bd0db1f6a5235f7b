// Package server implements the MCP (Model Context Protocol) server for the
// rectangle finder.
//
// This package provides a JSON-RPC 2.0 server that exposes rectangle search
// over 2D point sets, together with the supporting geometry, point file,
// plotting and OCR operations.
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
// Rectangle Search:
//   - rect_find: Find every rectangle in a point set
//   - rect_check: Test four points
//
// Geometry:
//   - geometry_length: Distance and slope between two points
//   - geometry_perpendicular: Test two lines with both tests
//
// Point Sets:
//   - points_load: Parse and cache a points file
//   - points_render: Plot points with rectangles outlined
//   - points_ocr: Read points from an image
//
// Companion Exercises:
//   - vowel_squares: 2x2 vowel blocks in a letter matrix
//   - route_find: Head to tail routes through airport connections
//
// # Point Sets
//
// Tools that take a point set accept inline points, or a path to a points
// file, or neither, in which case the built-in 96-point sample is used.
// Files are parsed once and cached by path. points_load with reload re-reads
// a file, and each initialize starts with an empty cache.
// RECTFINDER_MAX_POINTS caps the accepted size; a search over N points
// examines N choose 4 combinations.
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
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(cfg.NewLogger()))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
