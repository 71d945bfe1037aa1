package cache

import "time"

// Option applies a configuration option to the memo cache.
type Option func(*memoCache)

// WithMaxEntries bounds the number of stored entries.
func WithMaxEntries(n int) Option {
	return func(c *memoCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithDefaultTTL sets the TTL used when Put receives a non-positive one.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *memoCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithClock injects the time source; tests use it to step through expiry.
func WithClock(now func() time.Time) Option {
	return func(c *memoCache) {
		if now != nil {
			c.now = now
		}
	}
}
