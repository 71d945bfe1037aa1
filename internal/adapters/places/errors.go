package places

import "errors"

// Sentinel kinds for places lookup errors.
var (
	ErrNoAPIKey      = errors.New("places api key is not configured")
	ErrRequestDenied = errors.New("places request denied; check the api key")
	ErrQuotaExceeded = errors.New("places quota exceeded")
	ErrLookup        = errors.New("places lookup failed")
)
