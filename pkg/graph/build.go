package graph

import (
	"github.com/matzehuels/descendants/pkg/arena"
	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/tree"
)

// Option configures [Build].
type Option func(*options)

type options struct {
	columnWidth float64
	rowHeight   float64
	separator   string
}

// WithSpacing overrides the column width and row height. Non-positive values
// keep the defaults.
func WithSpacing(column, row float64) Option {
	return func(o *options) {
		if column > 0 {
			o.columnWidth = column
		}
		if row > 0 {
			o.rowHeight = row
		}
	}
}

// WithLineageSeparator overrides the separator used in Node.Lineage.
func WithLineageSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// Build lays out the subtree under root. A nil root returns [Empty].
//
// The output is a pure function of the subtree's shape and names:
// rebuilding the same input yields identical ids, labels and edges.
func Build(root *tree.Node, opts ...Option) Graph {
	a, err := arena.New(root)
	if err != nil {
		return Empty()
	}
	return FromArena(a, opts...)
}

// FromArena lays out an already flattened arena.
func FromArena(a *arena.Arena, opts ...Option) Graph {
	o := options{
		columnWidth: DefaultColumnWidth,
		rowHeight:   DefaultRowHeight,
		separator:   arena.Separator,
	}
	for _, opt := range opts {
		opt(&o)
	}

	g := Graph{
		Nodes: make([]Node, 0, a.Len()),
		Edges: make([]Edge, 0, max(a.Len()-1, 0)),
		Root:  a.Root().Name,
	}

	a.BreadthFirst(func(n *arena.WorkingNode, rank int) {
		parentName := a.ParentName(n.Index)
		cat := category.Classify(n.Name, parentName)

		node := Node{
			ID:      n.ID,
			Label:   n.Name,
			Lineage: a.LineageWith(n.Index, o.separator),
			Position: Position{
				X: float64(n.Depth) * o.columnWidth,
				Y: float64(rank) * o.rowHeight,
			},
			Depth:    n.Depth,
			Category: cat,
			Style:    StyleFor(cat),
		}
		if p := a.Node(n.Parent); p != nil {
			node.Parent = p.ID
			g.Edges = append(g.Edges, Edge{
				ID:     EdgeID(p.ID, n.ID),
				Source: p.ID,
				Target: n.ID,
			})
		}
		g.Nodes = append(g.Nodes, node)
	})
	return g
}
