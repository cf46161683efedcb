// Package querycache memoizes read requests keyed by resource plus the exact
// parameter set, and coalesces concurrent identical reads so at most one call
// is in flight per unique key. Mutations invalidate whole resources.
package querycache

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	value    any
	storedAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	maxAge  time.Duration
	metrics *metrics.QueryCacheMetrics
	now     func() time.Time
}

// New builds a cache. metrics may be nil.
func New(cfg config.CacheConfig, m *metrics.QueryCacheMetrics) *Cache {
	return &Cache{
		entries: map[string]entry{},
		maxAge:  cfg.MaxAge,
		metrics: m,
		now:     time.Now,
	}
}

// Key canonicalizes a resource and parameter set into a cache key. Encode
// sorts parameters, so equivalent requests always share a key.
func Key(resource string, params url.Values) string {
	return resource + "?" + params.Encode()
}

// Fetch returns the cached value for the key, or runs fn to populate it.
// Errors are never cached.
func (c *Cache) Fetch(ctx context.Context, resource string, params url.Values, fn func(ctx context.Context) (any, error)) (any, error) {
	key := Key(resource, params)
	if value, ok := c.lookup(key); ok {
		c.metrics.IncHit(resource)
		return value, nil
	}
	c.metrics.IncMiss(resource)

	value, err, _ := c.group.Do(key, func() (any, error) {
		// A losing flight may arrive after the winner stored the value.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate drops every cached entry under the resource. Mutation paths call
// this so subsequent reads refetch.
func (c *Cache) Invalidate(resource string) {
	prefix := resource + "?"
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	c.metrics.IncInvalidation(resource)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.maxAge > 0 && c.now().Sub(e.storedAt) > c.maxAge {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// FetchAs is the typed wrapper the resource clients use.
func FetchAs[T any](ctx context.Context, c *Cache, resource string, params url.Values, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Fetch(ctx, resource, params, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, pkgerrors.New(pkgerrors.CodeInternal, "cached value has unexpected type")
	}
	return typed, nil
}
