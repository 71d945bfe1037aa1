package teetime

import "errors"

// Sentinel kinds for simulation input errors.
var (
	ErrInvalidDate   = errors.New("invalid date; must be YYYY-MM-DD")
	ErrInvalidRating = errors.New("invalid rating; must be within [0,5]")
)
