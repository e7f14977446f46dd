// Package nodelink exports genealogy graphs as Graphviz diagrams.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// With Pinned set, every node carries its computed position (pos="x,y!")
// so the neato engine reproduces the breadth-first layout exactly. Without
// it, Graphviz lays the tree out itself with the dot engine, left to right.
//
// Node fill colours and the shared border colour follow each node's
// category. The lineage is attached as a tooltip, which SVG viewers show
// on hover.
//
// For PDF or PNG output use [RenderPDF] and [RenderPNG]; both convert the
// SVG with rsvg-convert.
package nodelink
