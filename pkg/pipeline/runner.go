package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/descendants/pkg/cache"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/observability"
	"github.com/matzehuels/descendants/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the dataset, cache and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Dataset Dataset
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner over ds.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(ds Dataset, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Dataset: ds,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
	}
}

// Model returns a view model over the runner's dataset with the build
// options from opts.
func (r *Runner) Model(opts Options) view.Model {
	return view.NewModel(r.Dataset.Root, opts.GraphOptions()...)
}

// Execute runs search → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	searchStart := time.Now()
	st, hit, err := r.SearchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.State = st
	result.Stats.SearchTime = time.Since(searchStart)
	result.Stats.NodeCount = len(st.Graph.Nodes)
	result.Stats.EdgeCount = len(st.Graph.Edges)
	result.CacheInfo.SearchHit = hit
	result.GraphHash = graphHash(st.Graph)

	switch st.Phase {
	case view.NotFound:
		r.Logger.Warn(view.NotFoundMessage, "term", opts.Term)
	default:
		r.Logger.Info("built graph",
			"term", opts.Term,
			"nodes", result.Stats.NodeCount,
			"edges", result.Stats.EdgeCount,
			"duration", result.Stats.SearchTime)
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, st, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedSearch is the cache encoding of a search result.
type cachedSearch struct {
	Phase view.Phase  `json:"phase"`
	Graph graph.Graph `json:"graph"`
	Match *view.Match `json:"match,omitempty"`
}

// SearchWithCacheInfo resolves opts.Term against the dataset and reports
// whether the result came from the cache.
func (r *Runner) SearchWithCacheInfo(ctx context.Context, opts Options) (view.State, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return view.State{}, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnSearchStart(ctx, opts.Term)
	start := time.Now()

	key := r.Keyer.GraphKey(r.Dataset.Hash, opts.Term, opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cs cachedSearch
			if err := json.Unmarshal(data, &cs); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				st := r.restore(opts.Term, cs)
				hooks.OnSearchComplete(ctx, opts.Term, st.Phase != view.NotFound, len(st.Graph.Nodes), time.Since(start))
				return st, true, nil
			}
		} else if err != nil {
			r.Logger.Debug("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	st := r.Model(opts).Search(opts.Term)
	hooks.OnSearchComplete(ctx, opts.Term, st.Phase != view.NotFound, len(st.Graph.Nodes), time.Since(start))

	if data, err := json.Marshal(cachedSearch{Phase: st.Phase, Graph: st.Graph, Match: st.Match}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLGraph)); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return st, false, nil
}

// Search is a convenience wrapper that calls SearchWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Search(ctx context.Context, opts Options) (view.State, error) {
	st, _, err := r.SearchWithCacheInfo(ctx, opts)
	return st, err
}

// restore rebuilds the settled state for term from a cached search. It
// matches what [view.Model.Search] returns for the same term.
func (r *Runner) restore(term string, cs cachedSearch) view.State {
	return view.State{
		Phase:      cs.Phase,
		Query:      term,
		Term:       term,
		Graph:      cs.Graph,
		Match:      cs.Match,
		Generation: 1,
	}
}

// RenderWithCacheInfo renders st in every requested format and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, st view.State, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	gh := graphHash(st.Graph)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(gh, opts.ArtifactKeyOpts(format, st))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		data, err := r.renderOne(ctx, st, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, st view.State, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, st, opts)
	return artifacts, err
}

func (r *Runner) renderOne(ctx context.Context, st view.State, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format, len(st.Graph.Nodes))
	start := time.Now()
	data, err := RenderFormat(ctx, st, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func graphHash(g graph.Graph) string {
	data, err := graph.Marshal(g)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
