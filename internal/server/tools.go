package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pointSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "number"},
			"y": map[string]interface{}{"type": "number"},
		},
		"required": []string{"x", "y"},
	}
}

func pointListSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Inline point set. Takes precedence over path.",
		"items":       pointSchema("A point"),
	}
}

var pathSchema = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to a points file (one x,y pair per line)",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Rectangle Search
		{
			Name:        "rect_find",
			Description: "Find every set of four points that form a rectangle. Points are given inline or read from a file; with neither, the built-in sample set is used. Returns each match with its indices and coordinates plus checked/found counters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointListSchema(),
					"path":   pathSchema,
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "Perpendicularity test: vector or magnitude. Defaults to the server setting.",
						"enum":        []string{"vector", "magnitude"},
					},
				},
			},
		},
		{
			Name:        "rect_check",
			Description: "Check whether four points, in any order, are the corners of a rectangle. Reports which corner sits opposite the first point.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Exactly four points",
						"items":       pointSchema("A corner"),
						"minItems":    4,
						"maxItems":    4,
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "Perpendicularity test: vector or magnitude",
						"enum":        []string{"vector", "magnitude"},
					},
				},
				"required": []string{"points"},
			},
		},

		// Geometry
		{
			Name:        "geometry_length",
			Description: "Euclidean distance between two points, with the slope of the line through them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"p1": pointSchema("First point"),
					"p2": pointSchema("Second point"),
				},
				"required": []string{"p1", "p2"},
			},
		},
		{
			Name:        "geometry_perpendicular",
			Description: "Check whether two lines, each given by two points, are perpendicular. Reports the verdict of both the vector and the magnitude test.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"line1": map[string]interface{}{
						"type":        "array",
						"description": "Two points on the first line",
						"items":       pointSchema("A point"),
						"minItems":    2,
						"maxItems":    2,
					},
					"line2": map[string]interface{}{
						"type":        "array",
						"description": "Two points on the second line",
						"items":       pointSchema("A point"),
						"minItems":    2,
						"maxItems":    2,
					},
				},
				"required": []string{"line1", "line2"},
			},
		},

		// Point Sets
		{
			Name:        "points_load",
			Description: "Parse a points file and return its points. The parsed set is cached for later rect_find and points_render calls; pass reload after editing the file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema,
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-read the file instead of using the cached copy (default: false)",
					},
					"text": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the points as x,y text lines instead of an array (default: false)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "points_render",
			Description: "Plot a point set with every rectangle found in it outlined, returned as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointListSchema(),
					"path":   pathSchema,
					"cell": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per coordinate unit (default: 32)",
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the index of each point (default: false)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resize factor applied after drawing (default: 1.0)",
					},
				},
			},
		},
		{
			Name:        "points_ocr",
			Description: "Read coordinate pairs from an image of printed text using Tesseract OCR. Lines that do not parse are returned in skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (default: server setting)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resize factor applied before OCR; upscale small print (default: 1.0)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Companion Exercises
		{
			Name:        "vowel_squares",
			Description: "Find every 2x2 block of vowels in a letter matrix. Returns the top-left row and column of each block.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"matrix": map[string]interface{}{
						"type":        "string",
						"description": "One row per line, letters separated by spaces or written together. Defaults to the sample matrix.",
					},
				},
			},
		},
		{
			Name:        "route_find",
			Description: "Given one-way connections between airports, find a route from every starting airport to every final destination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"edges": map[string]interface{}{
						"type":        "array",
						"description": "Connections. Defaults to the sample list.",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"from": map[string]interface{}{"type": "string"},
								"to":   map[string]interface{}{"type": "string"},
							},
							"required": []string{"from", "to"},
						},
					},
				},
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
