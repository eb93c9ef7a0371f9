// Package cache stores computed scenes and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Backends:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer], so every option that changes the output also
// changes the key. [Open] picks a backend from a URL-like spec.
package cache

import (
	"context"
	"time"
)

// Default TTLs for pipeline entries.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLDoc      = 24 * time.Hour
)

// Cache is a key/value byte store. Implementations are safe for concurrent
// use. Get reports a miss as (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
