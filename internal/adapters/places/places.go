// Package places looks up nearby golf courses through the Google Places
// nearby-search API. It is a collaborator around the pure core: results are
// memoized briefly so map panning does not hammer the upstream quota.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/teetrip/teetrip/internal/adapters/cache"
	"github.com/teetrip/teetrip/internal/domain/types"
	"github.com/teetrip/teetrip/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL  = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	defaultRadius   = 16_000
	maxRadiusMeters = 50_000
	defaultCacheTTL = 5 * time.Minute

	searchKeyword = "golf course"
)

// Lookup finds candidate courses near a coordinate.
type Lookup interface {
	// Nearby returns courses within radius meters of (lat, lng).
	Nearby(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error)
}

// Client implements Lookup against the Google Places API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	memo       cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a places client with configuration options. Without an
// API key every lookup fails with ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		cacheTTL:   defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nearbyResponse mirrors the subset of the Places payload we consume.
type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Vicinity         string  `json:"vicinity"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
	} `json:"results"`
}

// Nearby queries the Places API, serving repeat queries for the same rounded
// coordinates from the memo cache.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error) {
	const op = "places.nearby"
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoAPIKey)
	}
	if radius <= 0 {
		radius = defaultRadius
	}
	if radius > maxRadiusMeters {
		radius = maxRadiusMeters
	}

	key := cacheKey(lat, lng, radius)
	if c.memo != nil {
		if v, ok := c.memo.Get(ctx, key); ok {
			metrics.RecordCacheHit()
			return v.([]types.CourseCandidate), nil
		}
		metrics.RecordCacheMiss()
	}

	candidates, err := c.fetch(ctx, lat, lng, radius)
	if err != nil {
		metrics.RecordPlacesError()
		return nil, err
	}
	metrics.RecordPlacesLookup()

	if c.memo != nil {
		c.memo.Put(ctx, key, candidates, c.cacheTTL)
	}
	return candidates, nil
}

func (c *Client) fetch(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error) {
	const op = "places.nearby"

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	q := u.Query()
	q.Set("location", fmt.Sprintf("%v,%v", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("keyword", searchKeyword)
	q.Set("type", "establishment")
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}
	defer resp.Body.Close()

	var payload nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}

	switch payload.Status {
	case "REQUEST_DENIED":
		return nil, fmt.Errorf("%s: %w", op, ErrRequestDenied)
	case "OVER_QUERY_LIMIT":
		return nil, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}

	candidates := make([]types.CourseCandidate, 0, len(payload.Results))
	for _, place := range payload.Results {
		address := place.Vicinity
		if address == "" {
			address = place.FormattedAddress
		}
		candidates = append(candidates, types.CourseCandidate{
			ID:          place.PlaceID,
			Name:        place.Name,
			Lat:         place.Geometry.Location.Lat,
			Lng:         place.Geometry.Location.Lng,
			Address:     address,
			Rating:      place.Rating,
			RatingCount: place.UserRatingsTotal,
		})
	}
	return candidates, nil
}

// cacheKey rounds coordinates to three decimals (about 110 m) so nearby map
// pans share one cache entry.
func cacheKey(lat, lng float64, radius int) string {
	return fmt.Sprintf("places:%.3f,%.3f,%d", lat, lng, radius)
}
