package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/james-nesbitt/coding-challenges/internal/detection"
	"github.com/james-nesbitt/coding-challenges/internal/geometry"
	"github.com/james-nesbitt/coding-challenges/internal/ocr"
	"github.com/james-nesbitt/coding-challenges/internal/points"
	"github.com/james-nesbitt/coding-challenges/internal/render"
	"github.com/james-nesbitt/coding-challenges/internal/routes"
	"github.com/james-nesbitt/coding-challenges/internal/vowels"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "rect_find", "points_render").
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
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves the point set (inline, cached file or sample)
//  4. Calls the appropriate detection/render/ocr function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Rectangle Search
	case "rect_find":
		return s.handleRectFind(ctx, args)
	case "rect_check":
		return s.handleRectCheck(args)

	// Geometry
	case "geometry_length":
		return s.handleGeometryLength(args)
	case "geometry_perpendicular":
		return s.handleGeometryPerpendicular(args)

	// Point Sets
	case "points_load":
		return s.handlePointsLoad(args)
	case "points_render":
		return s.handlePointsRender(ctx, args)
	case "points_ocr":
		return s.handlePointsOCR(args)

	// Companion Exercises
	case "vowel_squares":
		return s.handleVowelSquares(args)
	case "route_find":
		return s.handleRouteFind(args)

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

// resolvePoints picks the point set for a call: inline points first, then
// the file at path, then the sample set. The configured cap applies to all
// three.
func (s *Server) resolvePoints(inline []geometry.Point, path string) ([]geometry.Point, error) {
	var pts []geometry.Point
	switch {
	case len(inline) > 0:
		pts = inline
	case path != "":
		loaded, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		pts = loaded
	default:
		pts = points.Sample()
	}

	if s.cfg.MaxPoints > 0 && len(pts) > s.cfg.MaxPoints {
		return nil, fmt.Errorf("%d points exceeds the limit of %d", len(pts), s.cfg.MaxPoints)
	}
	return pts, nil
}

// predicate returns the configured predicate, with the mode overridden
// when mode is non-empty.
func (s *Server) predicate(mode string) (detection.Predicate, error) {
	pred := s.cfg.Predicate()
	if mode == "" {
		return pred, nil
	}
	m, err := geometry.ParseMode(mode)
	if err != nil {
		return detection.Predicate{}, err
	}
	pred.Mode = m
	return pred, nil
}

// === Rectangle Search Handlers ===

type rectFindArgs struct {
	Points []geometry.Point `json:"points"`
	Path   string           `json:"path"`
	Mode   string           `json:"mode"`
}

func (s *Server) handleRectFind(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a rectFindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pred, err := s.predicate(a.Mode)
	if err != nil {
		return nil, err
	}
	pts, err := s.resolvePoints(a.Points, a.Path)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("searching for rectangles",
		"points", len(pts), "combinations", detection.Binomial4(len(pts)), "mode", pred.Mode)
	result, err := detection.FindAllRectangles(ctx, pts, pred)
	if err != nil {
		return nil, err
	}
	s.logger.Info("rectangle search finished",
		"checked", result.Summary.Checked, "found", result.Summary.Found)
	return result, nil
}

type rectCheckArgs struct {
	Points []geometry.Point `json:"points"`
	Mode   string           `json:"mode"`
}

type rectCheckResult struct {
	IsRectangle bool   `json:"is_rectangle"`
	Diagonal    int    `json:"diagonal,omitempty"`
	Mode        string `json:"mode"`
}

func (s *Server) handleRectCheck(args json.RawMessage) (interface{}, error) {
	var a rectCheckArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) != 4 {
		return nil, fmt.Errorf("rect_check needs exactly 4 points, got %d", len(a.Points))
	}
	pred, err := s.predicate(a.Mode)
	if err != nil {
		return nil, err
	}

	p := a.Points
	diagonal, ok := pred.Classify(p[0], p[1], p[2], p[3])
	result := rectCheckResult{IsRectangle: ok, Mode: pred.Mode.String()}
	if ok {
		result.Diagonal = diagonal
	}
	return result, nil
}

// === Geometry Handlers ===

type geometryLengthArgs struct {
	P1 geometry.Point `json:"p1"`
	P2 geometry.Point `json:"p2"`
}

type geometryLengthResult struct {
	Length   float64  `json:"length"`
	Vertical bool     `json:"vertical"`
	Slope    *float64 `json:"slope,omitempty"`
}

func (s *Server) handleGeometryLength(args json.RawMessage) (interface{}, error) {
	var a geometryLengthArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result := geometryLengthResult{
		Length:   geometry.Length(a.P1, a.P2),
		Vertical: geometry.IsSlopeInfinite(a.P1, a.P2),
	}
	if !result.Vertical {
		slope := geometry.Slope(a.P1, a.P2)
		result.Slope = &slope
	}
	return result, nil
}

type geometryPerpendicularArgs struct {
	Line1 []geometry.Point `json:"line1"`
	Line2 []geometry.Point `json:"line2"`
}

type geometryPerpendicularResult struct {
	Vector    bool `json:"vector"`
	Magnitude bool `json:"magnitude"`
}

func (s *Server) handleGeometryPerpendicular(args json.RawMessage) (interface{}, error) {
	var a geometryPerpendicularArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Line1) != 2 || len(a.Line2) != 2 {
		return nil, fmt.Errorf("each line needs exactly 2 points")
	}
	l1 := geometry.Ln(a.Line1[0], a.Line1[1])
	l2 := geometry.Ln(a.Line2[0], a.Line2[1])
	tol := s.cfg.Tolerance
	return geometryPerpendicularResult{
		Vector:    geometry.ModeVector.Perpendicular(l1, l2, tol),
		Magnitude: geometry.ModeMagnitude.Perpendicular(l1, l2, tol),
	}, nil
}

// === Point Set Handlers ===

type pointsLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
	Text   bool   `json:"text"`
}

type pointsLoadResult struct {
	Path         string           `json:"path"`
	Count        int              `json:"count"`
	Combinations int64            `json:"combinations"`
	Points       []geometry.Point `json:"points,omitempty"`
	Text         string           `json:"text,omitempty"`
}

func (s *Server) handlePointsLoad(args json.RawMessage) (interface{}, error) {
	var a pointsLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	pts, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result := pointsLoadResult{
		Path:         a.Path,
		Count:        len(pts),
		Combinations: detection.Binomial4(len(pts)),
	}
	if a.Text {
		result.Text = points.Format(pts)
	} else {
		result.Points = pts
	}
	return result, nil
}

type pointsRenderArgs struct {
	Points []geometry.Point `json:"points"`
	Path   string           `json:"path"`
	Cell   int              `json:"cell"`
	Labels bool             `json:"labels"`
	Scale  float64          `json:"scale"`
}

func (s *Server) handlePointsRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pointsRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	pts, err := s.resolvePoints(a.Points, a.Path)
	if err != nil {
		return nil, err
	}

	// Fewer than four points still plot, just without outlines
	matches := make([]detection.Match, 0)
	if len(pts) >= detection.MinPoints {
		result, err := detection.FindAllRectangles(ctx, pts, s.cfg.Predicate())
		if err != nil {
			return nil, err
		}
		matches = result.Matches
	}
	return render.PlotBase64(pts, matches, render.Options{
		Cell:   a.Cell,
		Labels: a.Labels,
		Scale:  a.Scale,
	})
}

type pointsOCRArgs struct {
	Path     string  `json:"path"`
	Language string  `json:"language"`
	Scale    float64 `json:"scale"`
}

type pointsOCRResult struct {
	*ocr.PointsResult
	Engine ocr.Info `json:"engine"`
}

func (s *Server) handlePointsOCR(args json.RawMessage) (interface{}, error) {
	var a pointsOCRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}
	result, err := ocr.ExtractPointsScaled(a.Path, a.Language, a.Scale)
	if err != nil {
		return nil, err
	}
	return pointsOCRResult{PointsResult: result, Engine: ocr.GetInfo()}, nil
}

// === Companion Exercise Handlers ===

type vowelSquaresArgs struct {
	Matrix string `json:"matrix"`
}

type vowelSquaresResult struct {
	Rows    int               `json:"rows"`
	Count   int               `json:"count"`
	Squares []vowels.Position `json:"squares"`
}

func (s *Server) handleVowelSquares(args json.RawMessage) (interface{}, error) {
	var a vowelSquaresArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m := vowels.Sample
	if a.Matrix != "" {
		parsed, err := vowels.ParseMatrix(a.Matrix)
		if err != nil {
			return nil, err
		}
		m = parsed
	}
	squares := vowels.FindSquares(m)
	return vowelSquaresResult{Rows: len(m), Count: len(squares), Squares: squares}, nil
}

type routeFindArgs struct {
	Edges []routes.Edge `json:"edges"`
}

type routeFindResult struct {
	Nodes  []string       `json:"nodes"`
	Heads  []string       `json:"heads"`
	Tails  []string       `json:"tails"`
	Routes []routes.Route `json:"routes"`
}

func (s *Server) handleRouteFind(args json.RawMessage) (interface{}, error) {
	var a routeFindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	edges := a.Edges
	if len(edges) == 0 {
		edges = routes.SampleEdges
	}
	for i, e := range edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge %d: from and to are required", i)
		}
	}
	g := routes.Build(edges)
	return routeFindResult{Nodes: g.Nodes(), Heads: g.Heads(), Tails: g.Tails(), Routes: g.AllRoutes()}, nil
}
