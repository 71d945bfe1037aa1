package teetime

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithDay overrides the simulated booking window, in minutes from midnight.
// The default window is 06:00 (inclusive) to 17:00 (exclusive).
func WithDay(startMinute, endMinute int) Option {
	return func(s *Simulator) {
		if startMinute >= 0 && endMinute > startMinute {
			s.dayStart = startMinute
			s.dayEnd = endMinute
		}
	}
}

// WithDefaultRating sets the rating used when callers pass a zero rating.
func WithDefaultRating(rating float64) Option {
	return func(s *Simulator) {
		if rating > 0 && rating <= maxRating {
			s.defaultRating = rating
		}
	}
}
