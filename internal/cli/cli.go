// Package cli implements the descendants command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/buildinfo"
	"github.com/matzehuels/descendants/pkg/cache"
	"github.com/matzehuels/descendants/pkg/config"
	"github.com/matzehuels/descendants/pkg/observability"
	"github.com/matzehuels/descendants/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "descendants"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's PersistentPreRunE.
	Config *config.Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "descendants explores a family tree as an interactive diagram",
		Long: `descendants shows a genealogy as a node-link diagram. Search for a name to
narrow the diagram to that person's descendants; select a person to see
their line of ancestry.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default "+config.DefaultFile()+")")
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.String("data", "", "tree file to load instead of the built-in dataset (.json, .yaml, .toml)")
	pf.String("cache-backend", config.BackendFile, "cache backend: file, redis, none")
	pf.String("cache-dir", "", "cache directory for the file backend")
	pf.String("redis", "", "Redis address for the redis backend")

	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.lineageCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig layers config file, environment and flags, then applies the
// log level.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	c.Config = cfg

	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetServerHooks(hooks)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured dataset.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ds, err := pipeline.LoadDataset(c.Config.Data)
	if err != nil {
		return nil, err
	}
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	r := pipeline.NewRunner(ds, store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// openCache opens the configured backend. A file cache that cannot be
// created degrades to no cache; an unreachable Redis is an error.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cc.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		c.Logger.Debug("using redis cache", "addr", cc.RedisAddr)
		return rc, nil
	default:
		fc, err := cache.NewFileCache(cc.Dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "dir", cc.Dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns options carrying the configured layout settings.
func (c *CLI) pipelineOptions(term string) pipeline.Options {
	return pipeline.Options{
		Term:        term,
		ColumnWidth: c.Config.ColumnWidth,
		RowHeight:   c.Config.RowHeight,
		Logger:      c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// termArg joins positional args into one search term, so names with
// spaces work unquoted.
func termArg(args []string) string {
	return strings.Join(args, " ")
}
