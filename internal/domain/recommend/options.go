package recommend

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMaxResults caps the length of the ranked list.
func WithMaxResults(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithMaxPlayers sets the largest accepted group size.
func WithMaxPlayers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.maxPlayers = n
		}
	}
}
