package tree

import "strings"

// Locate returns the first node in pre-order whose name contains term,
// compared case-insensitively. The returned node is the original node, so
// its whole subtree comes with it, unfiltered.
//
// An empty term returns root unchanged. Locate returns nil when nothing in
// the tree matches.
func Locate(root *Node, term string) *Node {
	if term == "" {
		return root
	}
	if root == nil {
		return nil
	}
	needle := strings.ToLower(term)

	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if strings.Contains(strings.ToLower(n.Name), needle) {
			found = n
			return false
		}
		return true
	})
	return found
}

// AncestorPath returns the names from root down to target, inclusive of
// both ends. target is matched by identity, which is what callers want after
// [Locate]: duplicate names (two Manassehs, two Eleazars) resolve to the node
// that was actually matched.
//
// The result is empty if target is nil or not part of the tree.
func AncestorPath(root, target *Node) []string {
	if root == nil || target == nil {
		return nil
	}
	var stack []string
	if pathTo(root, target, &stack) {
		return stack
	}
	return nil
}

func pathTo(n, target *Node, stack *[]string) bool {
	*stack = append(*stack, n.Name)
	if n == target {
		return true
	}
	for _, c := range n.Children {
		if pathTo(c, target, stack) {
			return true
		}
	}
	*stack = (*stack)[:len(*stack)-1]
	return false
}
