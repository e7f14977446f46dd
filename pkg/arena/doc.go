// Package arena flattens a genealogy tree into an indexed slice of working
// nodes with integer parent links.
//
// An [Arena] is built fresh for each graph build and never mutated after
// [New] returns. Nodes are stored in pre-order, so index 0 is always the
// active root and a node's parent always has a smaller index.
//
// Each node also carries a path identifier ("root", "root-0", "root-0-2")
// derived from its position under the active root. Path identifiers are only
// used as presentation ids; all internal links go through indices.
//
// # Lineage
//
// [Arena.Ancestors] and [Arena.Lineage] walk parent indices up to the root.
// The walk is capped at the arena size and stops at any out-of-range index,
// so even a hand-assembled, malformed arena cannot loop forever.
package arena
