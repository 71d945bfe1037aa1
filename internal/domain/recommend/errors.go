package recommend

import "errors"

// Sentinel kinds for ranking input errors.
var (
	ErrInvalidPlayerSet = errors.New("invalid player set; need 1 to 4 locations")
)
