// Package cache stores built graphs and rendered artifacts.
//
// Graph builds and renders are pure functions of the dataset and options,
// so their results can be cached indefinitely under content-derived keys.
// The [Keyer] derives those keys; a [Cache] stores the bytes.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for `descendants serve`
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes. Keys already include the dataset hash, so entries never
// go stale; the TTLs only bound disk and memory use.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
