// Package sink renders built genealogy graphs to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG with optional click popups, legend, banner
//     and pan/zoom (svgo)
//   - [RenderPNG]: raster snapshot drawn directly with gg, no external tools
//   - [RenderJSON]: the graph wire format plus legend and banner
//
// All renderers take a [graph.Graph] as produced by graph.Build and never
// modify it. An empty graph renders as a small frame carrying the banner,
// which is how "No descendant found." reaches file outputs.
//
// # Interactivity
//
// SVG output is self-contained: CSS and JavaScript are embedded in the
// document so it works when opened directly in a browser.
//
//	svg := sink.RenderSVG(g,
//	    sink.WithPopups(),             // click a node for name + lineage
//	    sink.WithLegend(),             // colour legend, top right
//	    sink.WithBanner("Found Noah"), // status line, top left
//	    sink.WithPanZoom(),            // wheel zoom, drag to pan
//	)
//
// [graph.Graph]: github.com/matzehuels/descendants/pkg/graph.Graph
package sink
