package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/james-nesbitt/coding-challenges/internal/config"
	"github.com/james-nesbitt/coding-challenges/internal/detection"
	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// oneRectangle hides a single rectangle, at indices 0, 2, 3 and 5.
const oneRectangle = `[
	{"x":1,"y":1},{"x":6,"y":2},{"x":1,"y":4},
	{"x":3,"y":1},{"x":9,"y":7},{"x":3,"y":4}
]`

// writePointsFile writes a points file and returns its path
func writePointsFile(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "handler-test-*.txt")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write points: %v", err)
	}
	return tmpFile.Name()
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name, args string) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": json.RawMessage(args),
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content = %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode content %q: %v", text, err)
	}
}

func expectToolError(t *testing.T, resp *MCPResponse, contains string) {
	t.Helper()

	if resp.Error == nil {
		t.Fatal("expected tool error")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, contains) {
		t.Errorf("error data %q should contain %q", data, contains)
	}
}

func TestHandleToolsCall_RectFind(t *testing.T) {
	s := New()

	var result detection.Result
	decodeContent(t, callTool(t, s, "rect_find", `{"points":`+oneRectangle+`}`), &result)

	if result.Summary.Points != 6 || result.Summary.Checked != 15 || result.Summary.Found != 1 {
		t.Errorf("Summary = %+v, want 6 points, 15 checked, 1 found", result.Summary)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(result.Matches))
	}
	if got := result.Matches[0].Indices; got != (detection.Quad{0, 2, 3, 5}) {
		t.Errorf("Indices = %v, want [0 2 3 5]", got)
	}
	if got := result.Matches[0].Points[0]; got != geometry.Pt(1, 1) {
		t.Errorf("Points[0] = %v, want (1, 1)", got)
	}
}

func TestHandleToolsCall_RectFind_Path(t *testing.T) {
	s := New()
	path := writePointsFile(t, "0,0\n0,2\n# corner\n3,0\n3,2\n")

	var result detection.Result
	decodeContent(t, callTool(t, s, "rect_find", `{"path":"`+path+`"}`), &result)

	if result.Summary.Found != 1 || result.Summary.Checked != 1 {
		t.Errorf("Summary = %+v, want 1 checked, 1 found", result.Summary)
	}
	if s.cache.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", s.cache.Len())
	}
}

func TestHandleToolsCall_RectFind_Mode(t *testing.T) {
	s := New()
	kite := `{"points":[{"x":0,"y":0},{"x":3,"y":6},{"x":6,"y":3},{"x":5,"y":5}]`

	var vector detection.Result
	decodeContent(t, callTool(t, s, "rect_find", kite+`}`), &vector)
	if vector.Summary.Found != 0 {
		t.Errorf("vector mode found %d, want 0", vector.Summary.Found)
	}

	var magnitude detection.Result
	decodeContent(t, callTool(t, s, "rect_find", kite+`,"mode":"magnitude"}`), &magnitude)
	if magnitude.Summary.Found != 1 {
		t.Errorf("magnitude mode found %d, want 1", magnitude.Summary.Found)
	}

	expectToolError(t, callTool(t, s, "rect_find", kite+`,"mode":"signed"}`), "signed")
}

func TestHandleToolsCall_RectFind_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 10
	s := New(WithConfig(cfg))

	tests := []struct {
		name, args, contains string
	}{
		{"too few", `{"points":[{"x":0,"y":0},{"x":1,"y":1}]}`, "not enough points"},
		{"sample over cap", `{}`, "exceeds the limit of 10"},
		{"missing file", `{"path":"/nonexistent/points.txt"}`, "no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectToolError(t, callTool(t, s, "rect_find", tt.args), tt.contains)
		})
	}
}

func TestHandleRectFind_Cancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.executeTool(ctx, "rect_find", json.RawMessage(`{"points":`+oneRectangle+`}`))
	if err == nil || !strings.Contains(err.Error(), "canceled") {
		t.Errorf("err = %v, want cancellation", err)
	}
}

func TestHandleToolsCall_RectCheck(t *testing.T) {
	s := New()

	tests := []struct {
		name         string
		args         string
		wantRect     bool
		wantDiagonal int
	}{
		{
			"square",
			`{"points":[{"x":0,"y":0},{"x":0,"y":1},{"x":1,"y":0},{"x":1,"y":1}]}`,
			true, 3,
		},
		{
			"diagonal second",
			`{"points":[{"x":0,"y":0},{"x":1,"y":1},{"x":0,"y":1},{"x":1,"y":0}]}`,
			true, 1,
		},
		{
			"kite",
			`{"points":[{"x":0,"y":0},{"x":3,"y":6},{"x":6,"y":3},{"x":5,"y":5}]}`,
			false, 0,
		},
		{
			"kite magnitude",
			`{"points":[{"x":0,"y":0},{"x":3,"y":6},{"x":6,"y":3},{"x":5,"y":5}],"mode":"magnitude"}`,
			true, 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got rectCheckResult
			decodeContent(t, callTool(t, s, "rect_check", tt.args), &got)
			if got.IsRectangle != tt.wantRect || got.Diagonal != tt.wantDiagonal {
				t.Errorf("got %+v, want is_rectangle=%v diagonal=%d", got, tt.wantRect, tt.wantDiagonal)
			}
		})
	}

	expectToolError(t, callTool(t, s, "rect_check", `{"points":[{"x":0,"y":0}]}`), "exactly 4 points")
}

func TestHandleToolsCall_GeometryLength(t *testing.T) {
	s := New()

	var sloped geometryLengthResult
	decodeContent(t, callTool(t, s, "geometry_length", `{"p1":{"x":0,"y":0},"p2":{"x":3,"y":4}}`), &sloped)
	if sloped.Length != 5 || sloped.Vertical {
		t.Errorf("got %+v, want length 5, not vertical", sloped)
	}
	if sloped.Slope == nil || !geometry.IsClose(*sloped.Slope, 4.0/3.0, 1e-12) {
		t.Errorf("slope = %v, want 4/3", sloped.Slope)
	}

	var vertical geometryLengthResult
	decodeContent(t, callTool(t, s, "geometry_length", `{"p1":{"x":1,"y":1},"p2":{"x":1,"y":5}}`), &vertical)
	if vertical.Length != 4 || !vertical.Vertical || vertical.Slope != nil {
		t.Errorf("got %+v, want length 4, vertical, no slope", vertical)
	}
}

func TestHandleToolsCall_GeometryPerpendicular(t *testing.T) {
	s := New()

	tests := []struct {
		name          string
		args          string
		wantVector    bool
		wantMagnitude bool
	}{
		{
			"axis aligned",
			`{"line1":[{"x":0,"y":0},{"x":0,"y":2}],"line2":[{"x":0,"y":0},{"x":2,"y":0}]}`,
			true, true,
		},
		{
			"reciprocal slopes",
			`{"line1":[{"x":0,"y":0},{"x":3,"y":6}],"line2":[{"x":0,"y":0},{"x":6,"y":3}]}`,
			false, true,
		},
		{
			"rotated",
			`{"line1":[{"x":0,"y":0},{"x":1,"y":2}],"line2":[{"x":0,"y":0},{"x":-2,"y":1}]}`,
			true, true,
		},
		{
			"zero length",
			`{"line1":[{"x":1,"y":1},{"x":1,"y":1}],"line2":[{"x":0,"y":0},{"x":3,"y":0}]}`,
			false, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got geometryPerpendicularResult
			decodeContent(t, callTool(t, s, "geometry_perpendicular", tt.args), &got)
			if got.Vector != tt.wantVector || got.Magnitude != tt.wantMagnitude {
				t.Errorf("got %+v, want vector=%v magnitude=%v", got, tt.wantVector, tt.wantMagnitude)
			}
		})
	}

	expectToolError(t, callTool(t, s, "geometry_perpendicular", `{"line1":[{"x":0,"y":0}],"line2":[]}`), "exactly 2 points")
}

func TestHandleToolsCall_PointsLoad(t *testing.T) {
	s := New()
	path := writePointsFile(t, "(1, 1)\n(6, 2)\n(1, 4)\n(3, 1)\n(9, 7)\n")

	var got pointsLoadResult
	decodeContent(t, callTool(t, s, "points_load", `{"path":"`+path+`"}`), &got)

	if got.Count != 5 || len(got.Points) != 5 {
		t.Errorf("Count = %d, len(Points) = %d, want 5", got.Count, len(got.Points))
	}
	if got.Combinations != 5 {
		t.Errorf("Combinations = %d, want 5", got.Combinations)
	}
	if got.Points[4] != geometry.Pt(9, 7) {
		t.Errorf("Points[4] = %v, want (9, 7)", got.Points[4])
	}

	expectToolError(t, callTool(t, s, "points_load", `{}`), "path is required")
	expectToolError(t, callTool(t, s, "points_load", `{"path":"`+writePointsFile(t, "1,2\nx,y\n")+`"}`), "line 2")
}

func TestHandleToolsCall_PointsLoad_Reload(t *testing.T) {
	s := New()
	path := writePointsFile(t, "0,0\n0,2\n3,0\n3,2\n")

	var first pointsLoadResult
	decodeContent(t, callTool(t, s, "points_load", `{"path":"`+path+`"}`), &first)
	if first.Count != 4 {
		t.Fatalf("Count = %d, want 4", first.Count)
	}

	if err := os.WriteFile(path, []byte("0,0\n0,2\n3,0\n3,2\n9,9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var cached pointsLoadResult
	decodeContent(t, callTool(t, s, "points_load", `{"path":"`+path+`"}`), &cached)
	if cached.Count != 4 {
		t.Errorf("cached Count = %d, want 4", cached.Count)
	}

	var reloaded pointsLoadResult
	decodeContent(t, callTool(t, s, "points_load", `{"path":"`+path+`","reload":true}`), &reloaded)
	if reloaded.Count != 5 {
		t.Errorf("reloaded Count = %d, want 5", reloaded.Count)
	}

	// Later calls by path see the refreshed set
	var result detection.Result
	decodeContent(t, callTool(t, s, "rect_find", `{"path":"`+path+`"}`), &result)
	if result.Summary.Points != 5 || result.Summary.Checked != 5 {
		t.Errorf("Summary = %+v, want 5 points and 5 checked", result.Summary)
	}
}

func TestHandleToolsCall_PointsLoad_Text(t *testing.T) {
	s := New()
	path := writePointsFile(t, "(1, 1) ; (2.5, -3)\n")

	var got pointsLoadResult
	decodeContent(t, callTool(t, s, "points_load", `{"path":"`+path+`","text":true}`), &got)
	if got.Text != "1,1\n2.5,-3\n" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Points != nil {
		t.Errorf("Points should be omitted in text mode, got %v", got.Points)
	}
	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
}

func TestHandleInitialize_ClearsCache(t *testing.T) {
	s := New()
	path := writePointsFile(t, "0,0\n1,1\n")
	if _, err := s.cache.Load(path); err != nil {
		t.Fatal(err)
	}

	s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: 1})
	if s.cache.Len() != 0 {
		t.Errorf("cache has %d entries after initialize, want 0", s.cache.Len())
	}
}

func TestHandleToolsCall_PointsRender(t *testing.T) {
	s := New()

	var got struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Points      int    `json:"points"`
		Rectangles  int    `json:"rectangles"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	decodeContent(t, callTool(t, s, "points_render", `{"points":`+oneRectangle+`,"labels":true}`), &got)

	if got.Points != 6 || got.Rectangles != 1 {
		t.Errorf("got %d points, %d rectangles, want 6 and 1", got.Points, got.Rectangles)
	}
	if got.MimeType != "image/png" {
		t.Errorf("MimeType = %s", got.MimeType)
	}
	if got.Width <= 0 || got.Height <= 0 {
		t.Errorf("size = %dx%d", got.Width, got.Height)
	}
	raw, err := base64.StdEncoding.DecodeString(got.ImageBase64)
	if err != nil {
		t.Fatalf("image is not base64: %v", err)
	}
	if !strings.HasPrefix(string(raw), "\x89PNG") {
		t.Error("image is not a PNG")
	}
}

func TestHandleToolsCall_PointsRender_FewPoints(t *testing.T) {
	s := New()

	var got struct {
		Points     int `json:"points"`
		Rectangles int `json:"rectangles"`
	}
	decodeContent(t, callTool(t, s, "points_render", `{"points":[{"x":0,"y":0},{"x":2,"y":1}]}`), &got)
	if got.Points != 2 || got.Rectangles != 0 {
		t.Errorf("got %+v, want 2 points and no rectangles", got)
	}
}

func TestHandleToolsCall_PointsOCR_NonExistentFile(t *testing.T) {
	s := New()
	for _, args := range []string{
		`{"path":"/nonexistent/points.png"}`,
		`{"path":"/nonexistent/points.png","scale":2}`,
	} {
		resp := callTool(t, s, "points_ocr", args)
		if resp.Error == nil || resp.Error.Code != -32000 {
			t.Errorf("%s: expected tool error, got %+v", args, resp)
		}
	}
}

func TestHandleToolsCall_VowelSquares(t *testing.T) {
	s := New()

	var sample vowelSquaresResult
	decodeContent(t, callTool(t, s, "vowel_squares", `{}`), &sample)
	if sample.Count != 6 || len(sample.Squares) != 6 {
		t.Fatalf("sample squares = %+v, want 6", sample)
	}
	if sample.Squares[0].Row != 1 || sample.Squares[0].Col != 3 {
		t.Errorf("first square = %+v, want row 1 col 3", sample.Squares[0])
	}

	var custom vowelSquaresResult
	decodeContent(t, callTool(t, s, "vowel_squares", `{"matrix":"a e x\no u x\n"}`), &custom)
	if custom.Rows != 2 || custom.Count != 1 || custom.Squares[0].Row != 0 || custom.Squares[0].Col != 0 {
		t.Errorf("custom squares = %+v, want one at 0, 0", custom)
	}
}

func TestHandleToolsCall_RouteFind(t *testing.T) {
	s := New()

	var sample routeFindResult
	decodeContent(t, callTool(t, s, "route_find", `{}`), &sample)
	if len(sample.Routes) != 4 {
		t.Fatalf("got %d routes, want 4", len(sample.Routes))
	}
	if strings.Join(sample.Nodes, ",") != "YYZ,CHO,NYJ,YVR,NYC,STL" {
		t.Errorf("nodes %v", sample.Nodes)
	}
	if strings.Join(sample.Heads, ",") != "YYZ,NYC" || strings.Join(sample.Tails, ",") != "YVR,STL" {
		t.Errorf("heads %v tails %v", sample.Heads, sample.Tails)
	}
	if got := strings.Join(sample.Routes[0].Path, " -> "); got != "YYZ -> CHO -> NYJ -> YVR" {
		t.Errorf("first route = %s", got)
	}

	expectToolError(t, callTool(t, s, "route_find", `{"edges":[{"from":"A"}]}`), "edge 0")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	}

	resp := s.handleToolsCall(context.Background(), req)
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_MissingArguments(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{"name":"rect_check"}`),
	}

	expectToolError(t, s.handleToolsCall(context.Background(), req), "exactly 4 points")
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	path := writePointsFile(t, "0,0\n0,1\n1,0\n1,1\n")

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args string
	}{
		{"rect_find", `{"path":"` + path + `"}`},
		{"rect_check", `{"points":[{"x":0,"y":0},{"x":0,"y":1},{"x":1,"y":0},{"x":1,"y":1}]}`},
		{"geometry_length", `{"p1":{"x":0,"y":0},"p2":{"x":1,"y":1}}`},
		{"geometry_perpendicular", `{"line1":[{"x":0,"y":0},{"x":0,"y":1}],"line2":[{"x":0,"y":0},{"x":1,"y":0}]}`},
		{"points_load", `{"path":"` + path + `"}`},
		{"points_render", `{"path":"` + path + `","scale":0.5}`},
		{"vowel_squares", `{}`},
		{"route_find", `{}`},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.executeTool(context.Background(), tt.name, json.RawMessage(tt.args))
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool(context.Background(), "unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool(context.Background(), "rect_find", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
