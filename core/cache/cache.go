package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value T
	built time.Time
}

// TTL is an in-process cache whose entries expire after a fixed duration.
// Concurrent misses for the same key share one load.
type TTL[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[T]
	sf      singleflight.Group
}

// NewTTL creates a cache. A zero ttl disables caching: every call loads.
func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[T]),
	}
}

// GetOrLoad returns the cached value for key, or runs load and stores its result.
// Failed loads are not cached.
func (c *TTL[T]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c.ttl <= 0 {
		return load(ctx)
	}

	if v, ok := c.get(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry[T]{value: v, built: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Invalidate drops the entry for key.
func (c *TTL[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTL[T]) get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.built) > c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}
