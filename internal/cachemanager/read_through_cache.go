package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache wraps a CacheManager with a compute function: Get
// serves the cached value when present and otherwise computes, stores,
// and returns it. I is the compute function's input (the search query),
// K the cache key derived from it by the caller.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
}

// NewReadThroughCache builds a read-through wrapper. shouldSkipCache
// bypasses the cache entirely so every Get computes fresh; the
// configuration layer maps "cache disabled" onto it.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the value for key, computing it on a miss and caching the
// result for ttl. Compute errors are returned as-is and never cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, nil
}
