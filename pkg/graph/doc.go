// Package graph turns a genealogy (sub)tree into a flat, positioned
// node/edge graph and defines its wire format.
//
// # Building
//
// [Build] is the only constructor:
//
//	g := graph.Build(tree.Locate(root, "noah"))
//
// A nil root yields an empty graph, which is how callers represent "no
// match". Otherwise every node of the subtree appears exactly once:
//
//   - ID is the node's path under the active root ("root", "root-0", ...)
//   - Position.X is depth × column width (default 250)
//   - Position.Y is breadth-first rank × row height (default 80)
//   - Lineage is the ancestor chain joined with " → "
//   - Category and Style come from [category.Classify]
//
// The breadth-first rank is a single counter over the whole traversal, so
// siblings are not grouped vertically; each node gets its own row.
//
// # Serialization
//
// Graphs marshal to a node-link JSON document:
//
//	{
//	  "nodes": [{"id": "root", "label": "Adam", "position": {"x": 0, "y": 0}, ...}],
//	  "edges": [{"id": "root->root-0", "source": "root", "target": "root-0"}]
//	}
//
// Use [Marshal], [Write] or [WriteFile] to encode and [Read] or [ReadFile]
// to decode.
//
// [category.Classify]: github.com/matzehuels/descendants/pkg/category.Classify
package graph
