// Package render turns built genealogy graphs into files.
//
// # Overview
//
// Rendering is split by output family:
//
//   - [sink]: SVG (svgo), PNG (gg) and JSON renderers that draw the
//     computed breadth-first layout directly
//   - [nodelink]: Graphviz DOT export, rendered through go-graphviz
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output always goes
// through this path.
//
//	svg := sink.RenderSVG(g, sink.WithLegend())
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/matzehuels/descendants/pkg/render/sink
// [nodelink]: github.com/matzehuels/descendants/pkg/render/nodelink
package render
