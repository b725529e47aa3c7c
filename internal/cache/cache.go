// Package cache provides a read-through cache with per-key request coalescing.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrTypeMismatch is returned when a key holds a value of a different type
// than the caller asked for.
var ErrTypeMismatch = errors.New("cache: cached value has unexpected type")

// Fetcher loads the value for a key on a cache miss.
type Fetcher[T any] func(ctx context.Context) (T, error)

type entry struct {
	data      any
	timestamp time.Time
	ttl       time.Duration
}

func (e entry) fresh(now time.Time) bool {
	return now.Sub(e.timestamp) < e.ttl
}

// call is a fetch in flight; done is closed once val/err are set.
type call struct {
	done chan struct{}
	val  any
	err  error
}

// Cache is a keyed TTL cache in front of slow reads. Concurrent Get calls for
// the same key share one fetch. Failed fetches are never cached.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*call

	now     func() time.Time
	metrics *Metrics
}

type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithMetrics records hits, misses and coalesced waits.
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[string]entry),
		inflight: make(map[string]*call),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key, in this order: the result of a fetch already
// in flight for key, a cached value younger than its ttl, or a fresh fetch.
//
// The fetch runs detached from ctx: if ctx ends first, Get returns ctx.Err()
// but the fetch still completes and populates the cache for later callers.
func Get[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch Fetcher[T]) (T, error) {
	var zero T

	c.mu.Lock()
	cl, ok := c.inflight[key]
	if ok {
		c.mu.Unlock()
		c.metrics.coalesced()
		return wait[T](ctx, cl)
	}
	if e, ok := c.entries[key]; ok && e.fresh(c.now()) {
		c.mu.Unlock()
		c.metrics.hit()
		v, ok := e.data.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q holds %T", ErrTypeMismatch, key, e.data)
		}
		return v, nil
	}
	cl = &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()
	c.metrics.miss()

	go c.run(context.WithoutCancel(ctx), key, ttl, cl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})

	return wait[T](ctx, cl)
}

func (c *Cache) run(ctx context.Context, key string, ttl time.Duration, cl *call, fetch func(context.Context) (any, error)) {
	defer close(cl.done)
	defer func() {
		if r := recover(); r != nil {
			cl.err = fmt.Errorf("cache: fetch for %q panicked: %v", key, r)
			c.finish(key, ttl, cl)
		}
	}()

	cl.val, cl.err = fetch(ctx)
	c.finish(key, ttl, cl)
}

// finish stores a successful result unless the key was cleared meanwhile.
func (c *Cache) finish(key string, ttl time.Duration, cl *call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] != cl {
		return
	}
	delete(c.inflight, key)
	if cl.err != nil {
		c.metrics.fetchError()
		return
	}
	c.entries[key] = entry{data: cl.val, timestamp: c.now(), ttl: ttl}
}

func wait[T any](ctx context.Context, cl *call) (T, error) {
	var zero T
	select {
	case <-cl.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	if cl.err != nil {
		return zero, cl.err
	}
	v, ok := cl.val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", ErrTypeMismatch, cl.val)
	}
	return v, nil
}

// Clear drops the cached entry and any in-flight marker for key.
// A fetch already running still answers its waiters but is not stored.
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.inflight, key)
}

// ClearPrefix clears every key starting with prefix.
func (c *Cache) ClearPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	for k := range c.inflight {
		if strings.HasPrefix(k, prefix) {
			delete(c.inflight, k)
		}
	}
}

// ClearAll resets the cache.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.inflight = make(map[string]*call)
}

// ClearExpired removes stale entries and reports how many were dropped.
// Nothing calls it automatically.
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if !e.fresh(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
