// Package geocode resolves free-text addresses to coordinates through the
// OpenStreetMap Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/teetrip/teetrip/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent = "TeeTrip/1.0"
	minQueryLength   = 3
)

// Location is a resolved address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Display string  `json:"display"`
}

// Resolver turns an address into a Location.
type Resolver interface {
	Forward(ctx context.Context, address string) (Location, error)
}

// Client implements Resolver against Nominatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a geocoding client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimResult mirrors the subset of the Nominatim payload we consume.
// Nominatim returns coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forward resolves address to its best-match coordinate.
func (c *Client) Forward(ctx context.Context, address string) (Location, error) {
	const op = "geocode.forward"

	address = strings.TrimSpace(address)
	if len(address) < minQueryLength {
		return Location{}, fmt.Errorf("%s: %w", op, ErrQueryTooShort)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Location{}, fmt.Errorf("%s: %w", op, err)
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, fmt.Errorf("%s: %w: %w", op, ErrLookup, err)
	}
	if len(results) == 0 {
		return Location{}, fmt.Errorf("%s: %q: %w", op, address, ErrNotFound)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return Location{}, fmt.Errorf("%s: %w", op, ErrLookup)
	}

	metrics.RecordGeocodeLookup()
	return Location{Lat: lat, Lng: lng, Display: results[0].DisplayName}, nil
}
