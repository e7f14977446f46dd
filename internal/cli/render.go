package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/pipeline"
	"github.com/matzehuels/descendants/pkg/view"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path; "-" writes to stdout
	formats  string  // comma-separated: svg, png, pdf, json, dot
	legend   bool    // draw the category legend
	popups   bool    // click-to-open details popups (svg)
	panZoom  bool    // mouse pan and zoom (svg)
	banner   bool    // match / not-found status line
	graphviz bool    // lay out svg/png/pdf with Graphviz
	pinned   bool    // keep computed positions under Graphviz
	scale    float64 // png pixel density
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		legend:  true,
		popups:  true,
		panZoom: true,
		banner:  true,
		scale:   pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [name]",
		Short: "Render the tree, or one person's descendants, to files",
		Long: `Render the family tree as SVG, PNG, PDF, JSON or Graphviz DOT.

With a name, only the first person whose name contains it (case-insensitive)
and their descendants are drawn. A name that matches nobody still renders,
showing "No descendant found.".`,
		Example: `  descendants render noah -f svg,png
  descendants render -f dot -o - | dot -Tpdf > tree.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), termArg(args), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", `output file (single format) or base path (multiple); "-" for stdout`)
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	f.BoolVar(&opts.legend, "legend", opts.legend, "draw the category legend")
	f.BoolVar(&opts.popups, "popups", opts.popups, "open a details popup on click (svg)")
	f.BoolVar(&opts.panZoom, "pan-zoom", opts.panZoom, "enable mouse pan and zoom (svg)")
	f.BoolVar(&opts.banner, "banner", opts.banner, "show the match or not-found status line")
	f.BoolVar(&opts.graphviz, "graphviz", false, "lay out with Graphviz instead of the built-in layout")
	f.BoolVar(&opts.pinned, "pinned", false, "keep built-in positions when using Graphviz")
	f.Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	f.BoolVar(&opts.refresh, "refresh", false, "rebuild the graph even if cached")
	addLayoutFlags(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, term string, ro renderOpts) error {
	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.pipelineOptions(term)
	opts.Formats = parseFormats(ro.formats)
	opts.Legend = ro.legend
	opts.Popups = ro.popups
	opts.PanZoom = ro.panZoom
	opts.Banner = ro.banner
	opts.Graphviz = ro.graphviz || ro.pinned
	opts.Pinned = ro.pinned
	opts.Scale = ro.scale
	opts.Refresh = ro.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	toStdout := ro.output == "-"
	if toStdout && len(opts.Formats) > 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.Formats))
	}

	var spin *Spinner
	if !toStdout && slowRender(opts) {
		spin = newSpinner(ctx, "Rendering "+strings.Join(opts.Formats, ", "))
		spin.Start()
	}
	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if toStdout {
		_, err := stdout.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(ro.output, term, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("render complete", "formats", len(opts.Formats))

	if res.State.Phase == view.NotFound {
		printWarning("%s", view.NotFoundMessage)
	} else {
		printSuccess("%s", pipeline.Title(res.State))
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.SearchHit && res.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	if term != "" && res.State.Phase != view.NotFound {
		printNextStep("Explore interactively", "descendants explore "+term)
	}
	return nil
}

// slowRender reports whether the run shells out or rasterizes.
func slowRender(opts pipeline.Options) bool {
	return opts.Graphviz ||
		slices.Contains(opts.Formats, pipeline.FormatPNG) ||
		slices.Contains(opts.Formats, pipeline.FormatPDF)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slug turns a search term into a file-name fragment.
func slug(term string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(term), "-"), "-")
}

// outputPaths maps each format to its output file.
//
// With one format, an output that already has an extension is used as is.
// Otherwise output (or "descendants[-<term>]") is a base path that gets
// ".<format>" appended; a known format extension on it is stripped first.
func outputPaths(output, term string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = appName
		if s := slug(term); s != "" {
			base += "-" + s
		}
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); slices.Contains(pipeline.Formats, ext) {
		base = strings.TrimSuffix(base, "."+ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
