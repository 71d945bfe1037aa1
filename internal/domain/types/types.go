// Package types contains common types used across the application
package types

// TimeSlot is a single bookable tee time on a course's daily schedule.
type TimeSlot struct {
	// Time is the 24-hour wall-clock start, formatted HH:MM.
	Time string `json:"time"`
	// Price is the green fee in whole dollars, always within [25,150].
	Price int `json:"price"`
	// Capacity is how many players the slot can still take, 1 to 4.
	Capacity int `json:"capacity"`
	// Holes is always 18.
	Holes int `json:"holes"`
}

// Availability is a course's generated schedule for one calendar day.
// When Available is false, Slots is empty.
type Availability struct {
	Available bool       `json:"available"`
	Slots     []TimeSlot `json:"slots"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CourseCandidate is a course under consideration for a group, as supplied
// by the places lookup.
type CourseCandidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// PriceFilter bounds the group's acceptable green fee range.
type PriceFilter struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ScoredCandidate is one ranked recommendation. Distances are in miles.
type ScoredCandidate struct {
	CourseCandidate
	Distances    []float64  `json:"distances"`
	MaxDistance  float64    `json:"max_distance"`
	AvgDistance  float64    `json:"avg_distance"`
	FittingSlots []TimeSlot `json:"fitting_slots"`
	Score        float64    `json:"score"`
	Explanation  string     `json:"explanation"`
}
