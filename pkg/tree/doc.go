// Package tree holds the nested genealogy model and the subtree locator.
//
// A [Node] is a name plus an ordered list of children. Trees are treated as
// immutable once loaded: nothing in this module mutates a Node after
// construction, so a single tree can be shared by every search, build and
// render without copying.
//
// # Searching
//
// [Locate] finds the first node, in pre-order, whose name contains a term
// (case-insensitive) and returns it together with its full subtree:
//
//	adam := tree.New("Adam", tree.New("Seth", tree.New("Enosh")))
//	seth := tree.Locate(adam, "seth")      // Seth → Enosh
//	path := tree.AncestorPath(adam, seth)  // [Adam Seth]
//
// An empty term returns the root unchanged. A term that matches nothing
// returns nil; callers treat that as "no descendant found", not as an error.
//
// # Traversal
//
// [Walk] visits nodes in pre-order, [Count] and [Height] summarize shape, and
// [Validate] checks the invariants the rest of the module relies on (non-empty
// names, bounded depth).
package tree
