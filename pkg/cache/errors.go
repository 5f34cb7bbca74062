package cache

import (
	"context"
	"errors"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned by [Lookup] when an item is not cached.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("cache closed")
)

// Lookup is Get with misses reported as [ErrCacheMiss].
func Lookup(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
