// Package config loads settings for the descendants CLI and server.
//
// Values are layered, lowest precedence first:
//
//  1. built-in defaults
//  2. a YAML file (--config, or ~/.config/descendants/config.yaml)
//  3. DESCENDANTS_* environment variables
//  4. command-line flags that were explicitly set
//
// Nested keys use a dot in YAML (cache.backend), a "cache_" prefix in the
// environment (DESCENDANTS_CACHE_BACKEND) and a "cache-" prefix on flags
// (--cache-backend).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	derrors "github.com/matzehuels/descendants/pkg/errors"
	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/view"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "DESCENDANTS_"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the listen address for `descendants serve`.
const DefaultAddr = "127.0.0.1:8080"

// Config holds every setting.
type Config struct {
	// Data is a tree file to load instead of the embedded dataset.
	Data    string `koanf:"data"`
	Verbose bool   `koanf:"verbose"`

	Debounce    time.Duration `koanf:"debounce"`
	SettleDelay time.Duration `koanf:"settle_delay"`
	FocusZoom   float64       `koanf:"focus_zoom"`

	ColumnWidth float64 `koanf:"column_width"`
	RowHeight   float64 `koanf:"row_height"`

	Addr  string      `koanf:"addr"`
	Cache CacheConfig `koanf:"cache"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string        `koanf:"backend"`
	Dir       string        `koanf:"dir"`
	RedisAddr string        `koanf:"redis_addr"`
	Prefix    string        `koanf:"prefix"`
	TTL       time.Duration `koanf:"ttl"`
}

// defaults returns the built-in layer.
func defaults() map[string]any {
	return map[string]any{
		"data":             "",
		"verbose":          false,
		"debounce":         view.DefaultDebounce,
		"settle_delay":     view.DefaultSettleDelay,
		"focus_zoom":       view.DefaultFocusZoom,
		"column_width":     graph.DefaultColumnWidth,
		"row_height":       graph.DefaultRowHeight,
		"addr":             DefaultAddr,
		"cache.backend":    BackendFile,
		"cache.dir":        DefaultCacheDir(),
		"cache.redis_addr": "localhost:6379",
		"cache.prefix":     "descendants",
		"cache.ttl":        7 * 24 * time.Hour,
	}
}

// Default returns the configuration with no file, env or flags applied.
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		panic(err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// DefaultCacheDir returns the per-user cache directory.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "descendants")
	}
	return filepath.Join(dir, "descendants")
}

// DefaultFile returns the per-user config file path. The file need not exist.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "descendants", "config.yaml")
}

// Load reads configuration. An empty path tries [DefaultFile] and skips it
// if missing; an explicit path must exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		if def := DefaultFile(); def != "" {
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKey(f.Name)
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps DESCENDANTS_CACHE_REDIS_ADDR to cache.redis_addr.
func envKey(s string) string {
	return nestCache(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)))
}

// flagKeys lists the flags that feed configuration. Other flags (output
// paths, formats) belong to single commands and are not config.
var flagKeys = map[string]bool{
	"data": true, "verbose": true, "debounce": true, "settle_delay": true,
	"focus_zoom": true, "column_width": true, "row_height": true, "addr": true,
	"cache.backend": true, "cache.dir": true, "cache.redis_addr": true,
	"cache.prefix": true, "cache.ttl": true,
}

// flagKey maps --cache-redis-addr to cache.redis_addr. --redis is accepted
// as shorthand for the Redis address.
func flagKey(name string) (string, bool) {
	key := strings.ReplaceAll(name, "-", "_")
	if key == "redis" {
		key = "cache_redis_addr"
	}
	key = nestCache(key)
	return key, flagKeys[key]
}

func nestCache(key string) string {
	if rest, ok := strings.CutPrefix(key, "cache_"); ok {
		return "cache." + rest
	}
	return key
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return derrors.New(derrors.ErrCodeInvalidConfig,
			"cache.backend must be %s, %s or %s, got %q", BackendFile, BackendRedis, BackendNone, c.Cache.Backend)
	}
	if c.Debounce < 0 || c.SettleDelay < 0 {
		return derrors.New(derrors.ErrCodeInvalidConfig, "debounce and settle_delay must not be negative")
	}
	if c.FocusZoom < view.MinZoom || c.FocusZoom > view.MaxZoom {
		return derrors.New(derrors.ErrCodeInvalidConfig,
			"focus_zoom must be within [%g, %g], got %g", view.MinZoom, view.MaxZoom, c.FocusZoom)
	}
	if c.ColumnWidth <= 0 || c.RowHeight <= 0 {
		return derrors.New(derrors.ErrCodeInvalidConfig, "column_width and row_height must be positive")
	}
	if c.Cache.Backend == BackendFile && c.Cache.Dir == "" {
		return derrors.New(derrors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	return nil
}
