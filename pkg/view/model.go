package view

import (
	"slices"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/tree"
)

// Model holds the inputs that never change while the view is running: the
// full tree and the graph build options.
type Model struct {
	root *tree.Node
	opts []graph.Option
}

// NewModel returns a model over the full tree root.
func NewModel(root *tree.Node, opts ...graph.Option) Model {
	return Model{root: root, opts: slices.Clone(opts)}
}

// Root returns the full, unfiltered tree.
func (m Model) Root() *tree.Node { return m.root }

// Initial returns the idle state showing the full tree.
func (m Model) Initial() State {
	return State{Phase: Idle, Graph: graph.Build(m.root, m.opts...)}
}

// Apply returns the state after ev. s is not modified.
func (m Model) Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case QueryChanged:
		s.Query = ev.Text
		s.Generation++
		s.Phase = Searching
		s.Camera = nil
		return s

	case SearchSettled:
		if ev.Generation != s.Generation {
			return s
		}
		return m.search(s, ev.Text)

	case NodeSelected:
		n, ok := s.Graph.Node(ev.ID)
		if !ok {
			return s
		}
		s.Selected = &Details{ID: n.ID, Name: n.Label, Lineage: n.Lineage, Category: n.Category}
		return s

	case NodeDeselected:
		s.Selected = nil
		return s

	case CameraSettled:
		if ev.Generation != s.Generation || s.Phase != Found {
			return s
		}
		cam := ev.Camera
		s.Camera = &cam
		return s

	default:
		return s
	}
}

// search rebuilds the graph for term. Locate always runs on the full tree,
// never on the subtree currently displayed.
func (m Model) search(s State, term string) State {
	s.Term = term
	s.Selected = nil
	s.Match = nil
	s.Camera = nil

	if term == "" {
		s.Phase = Idle
		s.Graph = graph.Build(m.root, m.opts...)
		return s
	}

	found := tree.Locate(m.root, term)
	if found == nil {
		s.Phase = NotFound
		s.Graph = graph.Empty()
		s.Graph.Term = term
		s.Graph.NotFound = true
		return s
	}

	s.Phase = Found
	s.Graph = graph.Build(found, m.opts...)
	s.Graph.Term = term
	s.Match = &Match{
		Name:   found.Name,
		NodeID: s.Graph.Nodes[0].ID,
		Path:   tree.AncestorPath(m.root, found),
	}
	return s
}

// Search applies term as if it had been typed and the debounce had fired.
// One-shot callers (HTTP handlers, CLI commands) use it to get the state for
// a query without running a [Controller].
func (m Model) Search(term string) State {
	s := m.Apply(m.Initial(), QueryChanged{Text: term})
	return m.Apply(s, SearchSettled{Text: term, Generation: s.Generation})
}
