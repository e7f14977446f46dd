// Package pipeline runs search → build → render for every entry point.
//
// The CLI's one-shot commands and the HTTP server both go through a
// [Runner], so a query produces the same graph and the same artifacts
// wherever it is asked. The interactive explorer uses [view.Controller]
// directly and only calls the pipeline to export what is on screen.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.DefaultDataset(), fileCache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Term:    "noah",
//	    Formats: []string{"svg", "png"},
//	    Legend:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := res.Artifacts["svg"]
//
// A term that matches nobody is not an error: the result carries an empty
// graph in the NotFound phase, and every renderer shows the not-found
// message for it.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/descendants/pkg/cache"
	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/view"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// DefaultScale is the PNG pixel density.
const DefaultScale = 2.0

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. The zero value renders the full tree
// as SVG.
type Options struct {
	// Search
	Term        string  `json:"term,omitempty"`
	ColumnWidth float64 `json:"column_width,omitempty"`
	RowHeight   float64 `json:"row_height,omitempty"`
	Separator   string  `json:"separator,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render
	Formats  []string `json:"formats,omitempty"`
	Graphviz bool     `json:"graphviz,omitempty"` // lay out svg/png with Graphviz
	Pinned   bool     `json:"pinned,omitempty"`   // keep computed positions under Graphviz
	Legend   bool     `json:"legend,omitempty"`
	Popups   bool     `json:"popups,omitempty"`
	PanZoom  bool     `json:"pan_zoom,omitempty"`
	Banner   bool     `json:"banner,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills defaults. Format
// names are normalized to lower case.
func (o *Options) ValidateAndSetDefaults() error {
	if err := derrors.ValidateSearchTerm(o.Term); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		norm, err := derrors.ValidateFormat(f, Formats...)
		if err != nil {
			return err
		}
		o.Formats[i] = norm
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// GraphOptions returns the build options for graph.Build.
func (o Options) GraphOptions() []graph.Option {
	opts := []graph.Option{graph.WithSpacing(o.ColumnWidth, o.RowHeight)}
	if o.Separator != "" {
		opts = append(opts, graph.WithLineageSeparator(o.Separator))
	}
	return opts
}

// GraphKeyOpts returns cache key options for the graph build.
func (o Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		ColumnWidth: o.ColumnWidth,
		RowHeight:   o.RowHeight,
		Separator:   o.Separator,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format of st.
func (o Options) ArtifactKeyOpts(format string, st view.State) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Graphviz: o.Graphviz,
		Legend:   o.Legend,
		Popups:   o.Popups,
		PanZoom:  o.PanZoom,
		Pinned:   o.Pinned,
		Scale:    o.Scale,
	}
	if o.Banner {
		k.Banner = st.Banner()
	}
	if st.Camera != nil {
		k.Camera = st.Camera.String()
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// State is the view state for the term: phase, graph and match.
	State view.State

	// GraphHash is the content hash of the built graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	SearchTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SearchHit bool // graph came from cache
	RenderHit bool // every artifact came from cache
}
