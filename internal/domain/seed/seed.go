// Package seed derives deterministic pseudo-random streams from a course id
// and calendar date. The same (course, date) pair yields the same stream on
// every platform, which is the contract the whole availability subsystem
// rests on; all arithmetic is fixed-width with wrapping overflow.
package seed

const (
	// keySeparator joins course id and date into the hashed key.
	keySeparator = "::"

	// Knuth/Numerical Recipes LCG parameters over 32-bit state.
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Derive hashes "courseID::date" into a 32-bit seed. The accumulator is a
// wrapping int32 (h = h*31 + char); the result is the two's-complement
// absolute value, so abs(MinInt32) wraps back to MinInt32 by definition.
func Derive(courseID, date string) uint32 {
	var h int32
	for _, c := range courseID + keySeparator + date {
		h = h*31 + int32(c)
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}

// Stream is a 32-bit linear-congruential generator. A Stream lives for one
// simulation call only; it is never shared or persisted.
type Stream struct {
	state uint32
}

// NewStream returns a Stream initialized to seed.
func NewStream(s uint32) *Stream {
	return &Stream{state: s}
}

// Next advances the state with wrapping uint32 arithmetic and returns the
// new state scaled into [0,1).
func (s *Stream) Next() float64 {
	s.state = s.state*lcgMultiplier + lcgIncrement
	return float64(s.state) / (1 << 32)
}
