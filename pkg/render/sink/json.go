package sink

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/graph"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	legend bool
	banner string
	path   []string
}

// WithJSONLegend includes the colour legend.
func WithJSONLegend() JSONOption { return func(r *jsonRenderer) { r.legend = true } }

// WithJSONBanner records the status line.
func WithJSONBanner(text string) JSONOption { return func(r *jsonRenderer) { r.banner = text } }

// WithJSONMatchPath records the ancestor path of the matched node.
func WithJSONMatchPath(path []string) JSONOption {
	return func(r *jsonRenderer) { r.path = path }
}

type jsonOutput struct {
	graph.Graph
	Banner    string           `json:"banner,omitempty"`
	MatchPath []string         `json:"match_path,omitempty"`
	Legend    []category.Entry `json:"legend,omitempty"`
}

// RenderJSON encodes g with optional presentation extras. Without options
// the output is exactly the graph wire format.
func RenderJSON(g graph.Graph, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if g.Nodes == nil {
		g.Nodes = []graph.Node{}
	}
	if g.Edges == nil {
		g.Edges = []graph.Edge{}
	}

	out := jsonOutput{Graph: g, Banner: r.banner, MatchPath: r.path}
	if r.legend {
		out.Legend = category.Legend()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
