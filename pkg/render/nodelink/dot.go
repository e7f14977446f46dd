package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/render"
)

// Engine names a Graphviz layout engine.
type Engine string

const (
	EngineDot   Engine = "dot"
	EngineNeato Engine = "neato"
)

// Options configures DOT generation.
type Options struct {
	// Pinned fixes every node at its computed position. Render pinned
	// output with EngineNeato.
	Pinned bool
	// Title is drawn as the graph label when set.
	Title string
}

// EngineFor returns the engine that honours opts.
func EngineFor(opts Options) Engine {
	if opts.Pinned {
		return EngineNeato
	}
	return EngineDot
}

// ToDOT converts a graph to Graphviz DOT source.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Pinned {
		// Positions are given in points.
		buf.WriteString("  inputscale=72;\n")
		buf.WriteString("  splines=true;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
		buf.WriteString("  ranksep=0.8;\n")
		buf.WriteString("  nodesep=0.2;\n")
	}
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, penwidth=2];\n")
	buf.WriteString("  edge [color=\"#94a3b8\", arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Pinned), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, pinned bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("fillcolor=%q", n.Style.Background),
		fmt.Sprintf("color=%q", n.Style.Border),
		fmt.Sprintf("width=%.2f", n.Style.MinWidth/72),
	}
	if n.Lineage != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Lineage))
	}
	if pinned {
		// Graphviz's y axis points up.
		y := -n.Position.Y
		if y == 0 {
			y = 0 // avoid "-0"
		}
		attrs = append(attrs, fmt.Sprintf("pos=\"%.0f,%.0f!\"", n.Position.X, y))
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with the given engine.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	switch engine {
	case EngineNeato:
		gv.SetLayout(graphviz.NEATO)
	case EngineDot, "":
		gv.SetLayout(graphviz.DOT)
	default:
		return nil, fmt.Errorf("unknown graphviz engine %q", engine)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain,
// pixel-sized one so the SVG scales like the other renderers' output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, engine Engine, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
