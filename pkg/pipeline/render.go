package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/descendants/pkg/render"
	"github.com/matzehuels/descendants/pkg/render/nodelink"
	"github.com/matzehuels/descendants/pkg/render/sink"
	"github.com/matzehuels/descendants/pkg/view"
)

// Render generates output artifacts for st in the requested formats.
func Render(ctx context.Context, st view.State, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, st, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders st in a single format. opts must already carry
// defaults.
func RenderFormat(ctx context.Context, st view.State, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		if opts.Graphviz {
			return renderGraphviz(ctx, st, opts, FormatSVG)
		}
		return sink.RenderSVG(st.Graph, svgOptions(st, opts)...), nil
	case FormatPNG:
		if opts.Graphviz {
			return renderGraphviz(ctx, st, opts, FormatPNG)
		}
		return sink.RenderPNG(st.Graph, pngOptions(st, opts)...)
	case FormatPDF:
		if opts.Graphviz {
			return renderGraphviz(ctx, st, opts, FormatPDF)
		}
		return render.ToPDF(ctx, sink.RenderSVG(st.Graph, svgOptions(st, opts)...))
	case FormatJSON:
		return sink.RenderJSON(st.Graph, jsonOptions(st, opts)...)
	case FormatDOT:
		return []byte(nodelink.ToDOT(st.Graph, dotOptions(st, opts))), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func renderGraphviz(ctx context.Context, st view.State, opts Options, format string) ([]byte, error) {
	dopts := dotOptions(st, opts)
	dot := nodelink.ToDOT(st.Graph, dopts)
	engine := nodelink.EngineFor(dopts)
	switch format {
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, engine, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot, engine)
	default:
		return nodelink.RenderSVG(ctx, dot, engine)
	}
}

// Title names the diagram for st: the root of the displayed subtree, or
// nothing for an empty graph.
func Title(st view.State) string {
	if st.Graph.IsEmpty() {
		return "Descendants"
	}
	return "Descendants of " + st.Graph.Root
}

func banner(st view.State, opts Options) string {
	if !opts.Banner {
		return ""
	}
	return st.Banner()
}

func svgOptions(st view.State, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTitle(Title(st))}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	if opts.Popups {
		svgOpts = append(svgOpts, sink.WithPopups())
	}
	if opts.PanZoom {
		svgOpts = append(svgOpts, sink.WithPanZoom())
	}
	if b := banner(st, opts); b != "" {
		svgOpts = append(svgOpts, sink.WithBanner(b))
	}
	if c := st.Camera; c != nil {
		svgOpts = append(svgOpts, sink.WithCamera(c.X, c.Y, c.Zoom))
	}
	return svgOpts
}

func pngOptions(st view.State, opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.Legend {
		pngOpts = append(pngOpts, sink.WithPNGLegend())
	}
	if b := banner(st, opts); b != "" {
		pngOpts = append(pngOpts, sink.WithPNGBanner(b))
	}
	return pngOpts
}

func jsonOptions(st view.State, opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Legend {
		jsonOpts = append(jsonOpts, sink.WithJSONLegend())
	}
	if b := banner(st, opts); b != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONBanner(b))
	}
	if st.Match != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONMatchPath(st.Match.Path))
	}
	return jsonOpts
}

func dotOptions(st view.State, opts Options) nodelink.Options {
	return nodelink.Options{Pinned: opts.Pinned, Title: Title(st)}
}
