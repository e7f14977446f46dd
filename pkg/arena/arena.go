package arena

import (
	"errors"
	"strconv"

	"github.com/matzehuels/descendants/pkg/tree"
)

// NoParent marks the active root.
const NoParent = -1

// RootID is the path identifier of the active root.
const RootID = "root"

// ErrNilRoot is returned by [New] when there is nothing to flatten.
var ErrNilRoot = errors.New("arena: nil root")

// WorkingNode is a tree node placed in an [Arena].
type WorkingNode struct {
	Index    int    // position in the arena
	ID       string // path identifier, unique within the arena
	Name     string
	Parent   int   // parent index, NoParent for the root
	Children []int // child indices in declared order
	Depth    int   // distance from the active root
	Source   *tree.Node
}

// IsRoot reports whether the node is the active root.
func (n *WorkingNode) IsRoot() bool { return n.Parent == NoParent }

// Arena holds the working nodes of one build.
type Arena struct {
	nodes []WorkingNode
	byID  map[string]int
}

// New flattens the tree under root. root becomes the active root regardless
// of where it sits in a larger tree.
func New(root *tree.Node) (*Arena, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	a := &Arena{
		nodes: make([]WorkingNode, 0, tree.Count(root)),
		byID:  make(map[string]int),
	}
	a.add(root, NoParent, RootID, 0)
	return a, nil
}

func (a *Arena) add(n *tree.Node, parent int, id string, depth int) int {
	idx := len(a.nodes)
	a.nodes = append(a.nodes, WorkingNode{
		Index:  idx,
		ID:     id,
		Name:   n.Name,
		Parent: parent,
		Depth:  depth,
		Source: n,
	})
	a.byID[id] = idx

	if len(n.Children) > 0 {
		children := make([]int, 0, len(n.Children))
		for i, c := range n.Children {
			if c == nil {
				continue
			}
			children = append(children, a.add(c, idx, id+"-"+strconv.Itoa(i), depth+1))
		}
		// a.nodes may have been reallocated by the recursive appends.
		a.nodes[idx].Children = children
	}
	return idx
}

// Len returns the number of nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Root returns the active root.
func (a *Arena) Root() *WorkingNode { return &a.nodes[0] }

// Node returns the node at idx, or nil if idx is out of range.
func (a *Arena) Node(idx int) *WorkingNode {
	if idx < 0 || idx >= len(a.nodes) {
		return nil
	}
	return &a.nodes[idx]
}

// Lookup resolves a path identifier to an arena index.
func (a *Arena) Lookup(id string) (int, bool) {
	idx, ok := a.byID[id]
	return idx, ok
}

// Nodes returns the nodes in pre-order. The slice is shared; callers must
// not modify it.
func (a *Arena) Nodes() []WorkingNode { return a.nodes }

// BreadthFirst calls fn for every node in breadth-first order starting at
// the root. rank counts dequeues across the whole traversal, not per level.
func (a *Arena) BreadthFirst(fn func(n *WorkingNode, rank int)) {
	queue := []int{0}
	for rank := 0; len(queue) > 0; rank++ {
		idx := queue[0]
		queue = queue[1:]
		n := &a.nodes[idx]
		fn(n, rank)
		queue = append(queue, n.Children...)
	}
}
