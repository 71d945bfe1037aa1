package places

import (
	"net/http"
	"time"

	"github.com/teetrip/teetrip/internal/adapters/cache"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the upstream endpoint; tests point it at a stub.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithCache memoizes lookups in the given cache.
func WithCache(memo cache.Cache) Option {
	return func(c *Client) {
		c.memo = memo
	}
}

// WithCacheTTL sets how long lookups stay memoized.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}
