// Package cache stores derived treemap artifacts between runs.
//
// # Backends
//
// Three [Cache] implementations share one byte-oriented interface:
//
//   - [FileCache]: JSON envelopes on disk, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys for the three pipeline stages. Each stage's key
// includes the hash of the previous stage's output, so changing the
// dataset invalidates every layout and artifact built from it:
//
//	dataset:  source location       → raw JSON bytes
//	layout:   dataset hash + canvas → settled frame JSON
//	artifact: layout hash + format  → rendered bytes
//
// [ScopedKeyer] prefixes every key, which lets several deployments share
// one Redis database.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage.
const (
	DatasetTTL  = 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry TTL.
//
// Get reports (nil, false, nil) on a miss; an error means the backend
// itself failed. A ttl of 0 means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
