package geocode

import "errors"

// Sentinel kinds for geocoding errors.
var (
	ErrQueryTooShort = errors.New("geocode query too short")
	ErrNotFound      = errors.New("no match for address")
	ErrLookup        = errors.New("geocode lookup failed")
)
