package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrPlacesDisabled   = errors.New("course lookup disabled; no places client configured")
	ErrGeocodeDisabled  = errors.New("geocoding disabled; no geocode client configured")
	ErrEmptyCourseBatch = errors.New("empty course batch")
)
