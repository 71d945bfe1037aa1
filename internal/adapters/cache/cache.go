// Package cache provides the TTL memo collaborator used around the pure
// availability and places computations. Caching only ever avoids
// recomputation; it must never change a computed value.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache memoizes values under string keys with a per-entry TTL.
type Cache interface {
	// Get returns the live value for key, or false when absent or expired.
	Get(ctx context.Context, key string) (any, bool)

	// Put stores value under key. A non-positive ttl uses the default.
	Put(ctx context.Context, key string, value any, ttl time.Duration)

	// Size returns the number of stored entries, expired ones included
	// until the next sweep.
	Size() int
}

type entry struct {
	value   any
	expires time.Time
}

// memoCache implements Cache with an RWMutex-guarded map and lazy expiry.
// When full it sweeps expired entries first, then evicts whichever live
// entry expires soonest.
type memoCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a memo cache with configuration options.
func New(opts ...Option) Cache {
	c := &memoCache{
		maxEntries: 10_000,
		defaultTTL: 5 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]entry)
	return c
}

func (c *memoCache) Get(_ context.Context, key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *memoCache) Put(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict()
	}
	c.entries[key] = entry{value: value, expires: c.now().Add(ttl)}
}

func (c *memoCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evict drops every expired entry, falling back to the entry closest to
// expiry when nothing has expired yet. Caller holds the write lock.
func (c *memoCache) evict() {
	now := c.now()
	dropped := false
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			dropped = true
		}
	}
	if dropped {
		return
	}

	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		if victim == "" || e.expires.Before(soonest) {
			victim = k
			soonest = e.expires
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}
