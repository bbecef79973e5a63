// Package cache provides byte-oriented caches for layout memoisation and
// rendered export artifacts.
//
// Three implementations share the [Cache] interface:
//   - [MemoryCache]: bounded in-process LRU, used by the viewer to memoise layouts
//   - [FileCache]: on-disk entries under the XDG cache directory, used by the CLI
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] so that every input that influences the
// cached value is part of the key.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache misses on every Get and discards every Set.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
