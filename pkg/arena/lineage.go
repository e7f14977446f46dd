package arena

import (
	"slices"
	"strings"
)

// Separator joins ancestor names in a lineage string.
const Separator = " → "

// Ancestors returns the names of the ancestors of the node at idx, from the
// active root down to its parent. The root has no ancestors.
//
// The walk stops after Len() steps or at the first out-of-range parent index.
func (a *Arena) Ancestors(idx int) []string {
	n := a.Node(idx)
	if n == nil {
		return nil
	}
	var names []string
	for steps := 0; n.Parent != NoParent && steps < len(a.nodes); steps++ {
		n = a.Node(n.Parent)
		if n == nil {
			break
		}
		names = append(names, n.Name)
	}
	slices.Reverse(names)
	return names
}

// Lineage returns the ancestor chain joined with [Separator], or the empty
// string for the root.
func (a *Arena) Lineage(idx int) string {
	return a.LineageWith(idx, Separator)
}

// LineageWith is [Arena.Lineage] with a custom separator.
func (a *Arena) LineageWith(idx int, sep string) string {
	return strings.Join(a.Ancestors(idx), sep)
}

// ParentName returns the name of the parent of the node at idx, or the
// empty string for the root.
func (a *Arena) ParentName(idx int) string {
	n := a.Node(idx)
	if n == nil {
		return ""
	}
	if p := a.Node(n.Parent); p != nil {
		return p.Name
	}
	return ""
}
