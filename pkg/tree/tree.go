package tree

import (
	"errors"
	"fmt"
)

// MaxDepth bounds how deep [Validate] will descend. Real genealogies are far
// shallower; anything deeper is treated as malformed input (for example a
// hand-edited file that nests a node under itself through YAML anchors).
const MaxDepth = 1024

var (
	// ErrNilRoot is returned by [Validate] when the tree is nil.
	ErrNilRoot = errors.New("tree has no root")

	// ErrNilNode is returned by [Validate] when a children list holds nil.
	ErrNilNode = errors.New("nil node")

	// ErrEmptyName is returned by [Validate] when a node has an empty name.
	ErrEmptyName = errors.New("node name must not be empty")

	// ErrTooDeep is returned by [Validate] when the tree exceeds [MaxDepth].
	ErrTooDeep = errors.New("tree exceeds maximum depth")
)

// Node is one person in the genealogy.
//
// Children are kept in declared order; that order drives pre-order search,
// breadth-first layout and path identifiers, so loaders must preserve it.
type Node struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// New is a convenience constructor used mostly by tests and examples.
func New(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits every node in pre-order: a node before its children, children
// in declared order. fn receives the node and its depth relative to root.
// Returning false from fn skips that node's subtree.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	if root == nil {
		return
	}
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Height returns the number of levels below root (0 for a single node,
// -1 for nil).
func Height(root *Node) int {
	h := -1
	Walk(root, func(_ *Node, depth int) bool {
		h = max(h, depth)
		return true
	})
	return h
}

// Validate checks that every node has a name and that the tree is no deeper
// than [MaxDepth]. Errors identify the offending node by its pre-order
// position so they stay useful for anonymous nodes.
func Validate(root *Node) error {
	if root == nil {
		return ErrNilRoot
	}
	var err error
	pos := 0
	Walk(root, func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		switch {
		case n == nil:
			err = fmt.Errorf("node %d: %w", pos, ErrNilNode)
		case n.Name == "":
			err = fmt.Errorf("node %d: %w", pos, ErrEmptyName)
		case depth > MaxDepth:
			err = fmt.Errorf("node %d (%s): %w", pos, n.Name, ErrTooDeep)
		}
		pos++
		return err == nil
	})
	return err
}
