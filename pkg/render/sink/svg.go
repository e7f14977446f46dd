package sink

import (
	"bytes"
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/graph"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	popups  bool
	legend  bool
	panZoom bool
	banner  string
	title   string
	camera  *camera
}

type camera struct {
	x, y, zoom float64
}

// WithPopups adds a details popup (name and lineage) shown on node click.
func WithPopups() SVGOption { return func(r *svgRenderer) { r.popups = true } }

// WithLegend draws the category colour legend.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithPanZoom enables mouse wheel zoom and drag panning.
func WithPanZoom() SVGOption { return func(r *svgRenderer) { r.panZoom = true } }

// WithBanner sets the status line drawn above the diagram.
func WithBanner(text string) SVGOption { return func(r *svgRenderer) { r.banner = text } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithCamera sets the initial diagram transform: screen = diagram*zoom + (x, y),
// relative to the diagram area.
func WithCamera(x, y, zoom float64) SVGOption {
	return func(r *svgRenderer) { r.camera = &camera{x: x, y: y, zoom: zoom} }
}

// RenderSVG renders g as a standalone SVG document.
func RenderSVG(g graph.Graph, opts ...SVGOption) []byte {
	var buf bytes.Buffer
	WriteSVG(&buf, g, opts...)
	return buf.Bytes()
}

// WriteSVG is [RenderSVG] writing to w.
func WriteSVG(w io.Writer, g graph.Graph, opts ...SVGOption) {
	r := svgRenderer{title: "Descendants"}
	for _, opt := range opts {
		opt(&r)
	}

	f := computeFrame(g, r.legend)
	canvas := svg.New(w)
	canvas.Start(int(f.width), int(f.height),
		fmt.Sprintf(`viewBox="0 0 %.0f %.0f"`, f.width, f.height))
	canvas.Title(r.title)

	canvas.Def()
	canvas.LinearGradient("backdrop", 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: colorBackdrop0, Opacity: 1},
		{Offset: 100, Color: colorBackdrop1, Opacity: 1},
	})
	canvas.DefEnd()
	canvas.Rect(0, 0, int(f.width), int(f.height), `fill="url(#backdrop)"`)

	renderStyle(w)

	transform := fmt.Sprintf(`transform="translate(%.2f %.2f)"`, f.offsetX, f.offsetY)
	if c := r.camera; c != nil {
		transform = fmt.Sprintf(`transform="translate(%.2f %.2f) scale(%.4f)"`, f.offsetX+c.x, f.offsetY+c.y, c.zoom)
	}
	canvas.Group(`id="viewport"`, transform)
	renderEdges(canvas, g)
	renderNodes(canvas, g)
	canvas.Gend()

	renderBanner(canvas, g, r.banner)
	if r.legend {
		renderLegend(canvas, f.width-legendWidth-margin/2, margin/2)
	}
	if r.popups {
		renderPopup(canvas)
	}
	renderScript(w, r)
	canvas.End()
}

func renderEdges(canvas *svg.SVG, g graph.Graph) {
	nodes := positions(g)
	for _, e := range g.Edges {
		from, ok1 := nodes[e.Source]
		to, ok2 := nodes[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		x1 := int(from.Position.X + nodeWidth(from))
		y1 := int(from.Position.Y + graph.NodeHeight/2)
		x2 := int(to.Position.X)
		y2 := int(to.Position.Y + graph.NodeHeight/2)
		mid := (x1 + x2) / 2
		canvas.Bezier(x1, y1, mid, y1, mid, y2, x2, y2,
			attr("id", "edge-"+e.ID), `class="edge"`,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", colorEdge))
	}
}

func renderNodes(canvas *svg.SVG, g graph.Graph) {
	for _, n := range g.Nodes {
		x, y := int(n.Position.X), int(n.Position.Y)
		w := int(nodeWidth(n))
		h := int(graph.NodeHeight)
		rad := int(n.Style.BorderRadius)

		canvas.Group(`class="node"`, attr("id", "node-"+n.ID), attr("data-id", n.ID),
			attr("data-label", n.Label), attr("data-lineage", n.Lineage),
			attr("data-category", n.Category.String()))
		canvas.Roundrect(x, y, w, h, rad, rad,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.0f", n.Style.Background, n.Style.Border, graph.BorderWidth))
		canvas.Text(x+w/2, y+h/2+4, n.Label,
			fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:%s;text-anchor:middle", colorText, fontSize, fontFamily))
		canvas.Gend()
	}
}

func renderBanner(canvas *svg.SVG, g graph.Graph, banner string) {
	if banner == "" && g.NotFound {
		banner = "No descendant found."
	}
	if banner == "" {
		return
	}
	fill := colorText
	if g.NotFound {
		fill = colorNotFound
	}
	canvas.Text(int(margin/2), int(margin/2+20), banner, `id="banner"`,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:%s;font-weight:600", fill, fontFamily))
}

func renderLegend(canvas *svg.SVG, x, y float64) {
	ix, iy := int(x), int(y)
	canvas.Group(`id="legend"`)
	canvas.Roundrect(ix, iy, int(legendWidth), int(legendHeight()), 8, 8,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", colorPanel, category.Border))
	canvas.Text(ix+12, iy+18, "Legend",
		fmt.Sprintf("fill:%s;font-size:12px;font-family:%s;font-weight:bold", colorText, fontFamily))
	for i, e := range category.Legend() {
		ry := iy + 28 + i*int(legendRow)
		canvas.Roundrect(ix+12, ry, 14, 14, 3, 3,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", e.Color, category.Border))
		canvas.Text(ix+34, ry+11, e.Label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:%s", colorSubtle, fontFamily))
	}
	canvas.Gend()
}

func renderPopup(canvas *svg.SVG) {
	canvas.Group(`id="popup"`, `visibility="hidden"`)
	canvas.Roundrect(0, 0, 280, 96, 10, 10,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", colorPanel, category.Border))
	canvas.Text(16, 28, "", `id="popup-name"`,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:%s;font-weight:bold", colorText, fontFamily))
	canvas.Text(16, 52, "Lineage:",
		fmt.Sprintf("fill:%s;font-size:11px;font-family:%s", colorSubtle, fontFamily))
	canvas.Text(16, 72, "", `id="popup-lineage"`,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:%s", colorText, fontFamily))
	canvas.Text(258, 22, "×", `id="popup-close"`,
		fmt.Sprintf("fill:%s;font-size:18px;font-family:%s;cursor:pointer", colorSubtle, fontFamily))
	canvas.Gend()
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}
