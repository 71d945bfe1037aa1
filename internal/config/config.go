// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and TEETRIP_ env vars.
// - External errors are wrapped via this package's sentinels.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PlacesAPIKey authenticates the Google Places proxy. Empty disables
	// the /courses endpoint; the pure endpoints keep working.
	PlacesAPIKey string `koanf:"places_api_key"`

	// PlacesBaseURL and GeocodeBaseURL point at the upstream APIs;
	// overridable for testing.
	PlacesBaseURL  string `koanf:"places_base_url"`
	GeocodeBaseURL string `koanf:"geocode_base_url"`

	// CacheTTLSeconds and CacheMaxEntries bound the memo cache.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// BatchConcurrency bounds the fan-out of batch availability requests.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxPlayers caps the group size accepted by recommendations.
	MaxPlayers int `koanf:"max_players"`

	// HTTPClientTimeoutSeconds applies to outbound places/geocode calls.
	HTTPClientTimeoutSeconds int `koanf:"http_client_timeout_seconds"`
}

// New creates a Config with defaults. Every pure-computation endpoint works
// with these values and no environment at all.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":8080",
		PlacesBaseURL:            "https://maps.googleapis.com/maps/api/place/nearbysearch/json",
		GeocodeBaseURL:           "https://nominatim.openstreetmap.org/search",
		CacheTTLSeconds:          300,
		CacheMaxEntries:          10_000,
		BatchConcurrency:         runtime.NumCPU() * 2,
		MaxPlayers:               4,
		HTTPClientTimeoutSeconds: 10,
	}
}
