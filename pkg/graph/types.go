package graph

import (
	"github.com/matzehuels/descendants/pkg/category"
)

// =============================================================================
// Layout constants
// =============================================================================

const (
	DefaultColumnWidth = 250.0
	DefaultRowHeight   = 80.0

	// NodeMinWidth and NodeHeight are the render-time node box. Renderers
	// may widen a box to fit its label, never narrow it.
	NodeMinWidth = 120.0
	NodeHeight   = 36.0

	BorderRadius = 10.0
	BorderWidth  = 2.0
)

// =============================================================================
// Graph
// =============================================================================

// Graph is the result of one build.
//
// Nodes are in breadth-first order, so Nodes[0] is the active root when the
// graph is not empty. NotFound is set by callers that built the graph from a
// search with no match.
type Graph struct {
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
	Root     string `json:"root,omitempty"`
	Term     string `json:"term,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
}

// Empty returns a graph with no nodes or edges. Slices are non-nil so the
// JSON form is {"nodes":[],"edges":[]}.
func Empty() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeBounds returns the render-time box of the node with the given id.
func (g Graph) NodeBounds(id string) (Rect, bool) {
	n, ok := g.Node(id)
	if !ok {
		return Rect{}, false
	}
	return n.Bounds(), true
}

// Bounds returns the smallest rectangle containing every node box. An empty
// graph has zero bounds.
func (g Graph) Bounds() Rect {
	if g.IsEmpty() {
		return Rect{}
	}
	r := g.Nodes[0].Bounds()
	for _, n := range g.Nodes[1:] {
		r = r.Union(n.Bounds())
	}
	return r
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a positioned, styled person.
type Node struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Lineage  string            `json:"lineage"`
	Position Position          `json:"position"`
	Depth    int               `json:"depth"`
	Parent   string            `json:"parent,omitempty"`
	Category category.Category `json:"category"`
	Style    Style             `json:"style"`
}

// Bounds returns the node's box anchored at its top-left position.
func (n Node) Bounds() Rect {
	return Rect{X: n.Position.X, Y: n.Position.Y, W: max(n.Style.MinWidth, NodeMinWidth), H: NodeHeight}
}

// Position is the top-left corner of a node box in diagram coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style is the visual treatment of a node.
type Style struct {
	Background   string  `json:"background"`
	Border       string  `json:"border"`
	BorderRadius float64 `json:"border_radius"`
	MinWidth     float64 `json:"min_width"`
}

// StyleFor returns the style of a node in category c.
func StyleFor(c category.Category) Style {
	return Style{
		Background:   c.Color(),
		Border:       category.Border,
		BorderRadius: BorderRadius,
		MinWidth:     NodeMinWidth,
	}
}

// Edge links a parent to a child.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// EdgeID returns the identifier of the edge from source to target.
func EdgeID(source, target string) string { return source + "->" + target }

// =============================================================================
// Geometry
// =============================================================================

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
