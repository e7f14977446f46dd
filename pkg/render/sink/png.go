package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/descendants/pkg/category"
	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/graph"
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	legend bool
	banner string
}

// WithScale sets the output scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGLegend draws the category colour legend.
func WithPNGLegend() PNGOption { return func(r *pngRenderer) { r.legend = true } }

// WithPNGBanner sets the status line drawn above the diagram.
func WithPNGBanner(text string) PNGOption { return func(r *pngRenderer) { r.banner = text } }

const (
	// maxPixels bounds the canvas so a huge graph cannot exhaust memory.
	maxPixels = 16 << 20
	// minScale is the smallest density [RenderPNG] shrinks to before giving up.
	minScale = 0.1
)

// fitScale lowers scale until a width x height frame fits in maxPixels.
// Requested densities that already fit are returned unchanged.
func fitScale(width, height, scale float64) (float64, error) {
	if width*height*scale*scale > maxPixels {
		scale = math.Sqrt(maxPixels / (width * height))
	}
	for scale >= minScale && math.Ceil(width*scale)*math.Ceil(height*scale) > maxPixels {
		scale *= 0.99
	}
	if scale < minScale {
		return 0, derrors.New(derrors.ErrCodeInvalidInput,
			"graph too large for png (%.0fx%.0f at scale 1), use svg instead", width, height)
	}
	return scale, nil
}

// RenderPNG rasterizes g. Unlike PDF export it needs no external tools.
func RenderPNG(g graph.Graph, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	f := computeFrame(g, r.legend)
	scale, err := fitScale(f.width, f.height, r.scale)
	if err != nil {
		return nil, err
	}
	r.scale = scale
	w := int(math.Ceil(f.width * r.scale))
	h := int(math.Ceil(f.height * r.scale))

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	grad := gg.NewLinearGradient(0, 0, f.width, f.height)
	grad.AddColorStop(0, mustHex(colorBackdrop0))
	grad.AddColorStop(1, mustHex(colorBackdrop1))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, f.width, f.height)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	banner := r.banner
	if banner == "" && g.NotFound {
		banner = "No descendant found."
	}
	if banner != "" {
		dc.SetHexColor(colorText)
		if g.NotFound {
			dc.SetHexColor(colorNotFound)
		}
		dc.DrawStringAnchored(banner, margin/2, margin/2+14, 0, 0.5)
	}

	dc.Push()
	dc.Translate(f.offsetX, f.offsetY)
	drawEdges(dc, g)
	for _, n := range g.Nodes {
		drawNode(dc, n)
	}
	dc.Pop()

	if r.legend {
		drawLegend(dc, f.width-legendWidth-margin/2, margin/2)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawEdges(dc *gg.Context, g graph.Graph) {
	nodes := positions(g)
	dc.SetHexColor(colorEdge)
	dc.SetLineWidth(1.5)
	for _, e := range g.Edges {
		from, ok1 := nodes[e.Source]
		to, ok2 := nodes[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		x1 := from.Position.X + nodeWidth(from)
		y1 := from.Position.Y + graph.NodeHeight/2
		x2 := to.Position.X
		y2 := to.Position.Y + graph.NodeHeight/2
		mid := (x1 + x2) / 2
		dc.MoveTo(x1, y1)
		dc.CubicTo(mid, y1, mid, y2, x2, y2)
		dc.Stroke()
	}
}

func drawNode(dc *gg.Context, n graph.Node) {
	x, y := n.Position.X, n.Position.Y
	w, h := nodeWidth(n), graph.NodeHeight

	dc.SetHexColor(n.Style.Background)
	dc.DrawRoundedRectangle(x, y, w, h, n.Style.BorderRadius)
	dc.Fill()
	dc.SetHexColor(n.Style.Border)
	dc.SetLineWidth(graph.BorderWidth)
	dc.DrawRoundedRectangle(x, y, w, h, n.Style.BorderRadius)
	dc.Stroke()

	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(n.Label, x+w/2, y+h/2, 0.5, 0.5)
}

func drawLegend(dc *gg.Context, x, y float64) {
	dc.SetHexColor(colorPanel)
	dc.DrawRoundedRectangle(x, y, legendWidth, legendHeight(), 8)
	dc.Fill()
	dc.SetHexColor(category.Border)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, legendWidth, legendHeight(), 8)
	dc.Stroke()

	dc.SetHexColor(colorText)
	dc.DrawStringAnchored("Legend", x+12, y+14, 0, 0.5)
	for i, e := range category.Legend() {
		ry := y + 28 + float64(i)*legendRow
		dc.SetHexColor(e.Color)
		dc.DrawRoundedRectangle(x+12, ry, 14, 14, 3)
		dc.Fill()
		dc.SetHexColor(category.Border)
		dc.DrawRoundedRectangle(x+12, ry, 14, 14, 3)
		dc.Stroke()
		dc.SetHexColor(colorSubtle)
		dc.DrawStringAnchored(e.Label, x+34, ry+7, 0, 0.5)
	}
}
