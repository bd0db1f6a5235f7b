// Package routes finds routes through a directed graph of airport
// connections.
//
// Heads are airports nobody flies into; tails are airports with no onward
// flight. AllRoutes pairs every head with every tail and reports the first
// route found between them, or none.
package routes

import (
	"fmt"
	"strings"
)

// Edge is a direct connection From → To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SampleEdges is the demonstration connection list.
var SampleEdges = []Edge{
	{"YYZ", "CHO"},
	{"NYJ", "YVR"},
	{"CHO", "NYJ"},
	{"NYC", "STL"},
}

// Graph is an adjacency list. Node order and edge order follow the order
// in which they first appeared in the edge list.
type Graph struct {
	order []string
	next  map[string][]string
	into  map[string]int
}

// Build converts an edge list into a Graph. Both endpoints of every edge
// become nodes.
func Build(edges []Edge) *Graph {
	g := &Graph{
		next: make(map[string][]string),
		into: make(map[string]int),
	}
	for _, e := range edges {
		g.add(e.From)
		g.add(e.To)
		g.next[e.From] = append(g.next[e.From], e.To)
		if e.From != e.To {
			g.into[e.To]++
		}
	}
	return g
}

func (g *Graph) add(node string) {
	if _, ok := g.next[node]; ok {
		return
	}
	g.next[node] = nil
	g.order = append(g.order, node)
}

// Nodes returns every node in first-seen order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Heads returns the nodes with no inbound edge from another node.
func (g *Graph) Heads() []string {
	heads := make([]string, 0)
	for _, n := range g.order {
		if g.into[n] == 0 {
			heads = append(heads, n)
		}
	}
	return heads
}

// Tails returns the nodes with no outbound edge.
func (g *Graph) Tails() []string {
	tails := make([]string, 0)
	for _, n := range g.order {
		if len(g.next[n]) == 0 {
			tails = append(tails, n)
		}
	}
	return tails
}

// Route returns the first path from start to stop found by a depth-first
// walk in edge order, including both ends. It returns nil when stop is not
// reachable. A node is never visited twice, so cycles terminate.
func (g *Graph) Route(start, stop string) []string {
	if _, ok := g.next[start]; !ok {
		return nil
	}
	visited := make(map[string]bool)
	var walk func(node string) []string
	walk = func(node string) []string {
		if node == stop {
			return []string{node}
		}
		visited[node] = true
		for _, n := range g.next[node] {
			if visited[n] {
				continue
			}
			if rest := walk(n); rest != nil {
				return append([]string{node}, rest...)
			}
		}
		return nil
	}
	return walk(start)
}

// Route is the outcome of one head → tail search.
type Route struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Path []string `json:"path"`
}

// Found reports whether a path exists.
func (r Route) Found() bool {
	return len(r.Path) > 0
}

// String renders the route as two lines: "FROM -> TO" and the path, or
// "no route found".
func (r Route) String() string {
	if !r.Found() {
		return fmt.Sprintf("%s -> %s\nno route found", r.From, r.To)
	}
	return fmt.Sprintf("%s -> %s\n%s", r.From, r.To, strings.Join(r.Path, " -> "))
}

// AllRoutes searches every head → tail pair, heads outermost.
func (g *Graph) AllRoutes() []Route {
	out := make([]Route, 0)
	for _, h := range g.Heads() {
		for _, t := range g.Tails() {
			out = append(out, Route{From: h, To: t, Path: g.Route(h, t)})
		}
	}
	return out
}

// ParseEdges reads one "FROM TO" or "FROM,TO" pair per line. Blank lines
// and '#' comments are skipped.
func ParseEdges(s string) ([]Edge, error) {
	edges := make([]Edge, 0)
	for n, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		switch len(fields) {
		case 0:
			continue
		case 2:
			edges = append(edges, Edge{From: fields[0], To: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: want two airports, got %d fields", n+1, len(fields))
		}
	}
	return edges, nil
}
