// Package teetime generates deterministic synthetic tee-time schedules.
//
// There is no real booking backend behind this service; a course's schedule
// for a given day is procedurally generated from a PRNG stream seeded by the
// (course, date) pair. The number and order of stream draws is part of the
// contract: reordering them changes every generated schedule.
package teetime

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/teetrip/teetrip/internal/domain/seed"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// Default simulation constants.
const (
	defaultRating = 3.5
	maxRating     = 5.0

	// Booking window, in minutes from midnight: 06:00 to 17:00.
	defaultDayStart = 6 * 60
	defaultDayEnd   = 17 * 60

	// Day-level availability: rolls >= this threshold mean no tee times.
	unavailableThreshold = 0.7

	// Prestige bounds for rating/5 clamping.
	minPrestige = 0.3
	maxPrestige = 1.0

	minPrice = 25
	maxPrice = 150

	weekendMultiplier = 1.4

	// Per-slot thinning: skip rolls above this emit the slot.
	slotEmitThreshold = 0.2

	minInterval    = 8
	intervalSpread = 5
	slotHoles      = 18
	minutesPerHour = 60
)

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Generator produces a day's availability for a course.
type Generator interface {
	// Simulate returns the schedule for courseID on date (YYYY-MM-DD).
	// A zero rating falls back to the configured default.
	Simulate(ctx context.Context, courseID, date string, rating float64) (types.Availability, error)
}

// Simulator implements Generator with seeded procedural generation.
type Simulator struct {
	dayStart      int
	dayEnd        int
	defaultRating float64
}

// NewSimulator creates a Simulator with configuration options.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		dayStart:      defaultDayStart,
		dayEnd:        defaultDayEnd,
		defaultRating: defaultRating,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate generates the slot schedule for one course on one day.
// Identical inputs yield byte-identical results on every platform; all
// validation happens before the first stream draw.
func (s *Simulator) Simulate(_ context.Context, courseID, date string, rating float64) (types.Availability, error) {
	day, err := parseDate(date)
	if err != nil {
		return types.Availability{}, err
	}
	if rating == 0 {
		rating = s.defaultRating
	}
	if rating < 0 || rating > maxRating {
		return types.Availability{}, fmt.Errorf("rating %v: %w", rating, ErrInvalidRating)
	}

	stream := seed.NewStream(seed.Derive(courseID, date))

	// One draw decides whether the course has any tee times at all. An
	// unavailable day consumes no further draws.
	if stream.Next() >= unavailableThreshold {
		return types.Availability{Available: false, Slots: []types.TimeSlot{}}, nil
	}

	weekday := day.Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday
	prestige := clamp(rating/maxRating, minPrestige, maxPrestige)

	slots := []types.TimeSlot{}
	for minute := s.dayStart; minute < s.dayEnd; {
		hour := minute / minutesPerHour

		price := slotPrice(hour, isWeekend, prestige, stream.Next())
		capacity := slotCapacity(stream.Next())

		// Thin out roughly 20% of slots independently of the day roll.
		if stream.Next() > slotEmitThreshold {
			slots = append(slots, types.TimeSlot{
				Time:     fmt.Sprintf("%02d:%02d", hour, minute%minutesPerHour),
				Price:    price,
				Capacity: capacity,
				Holes:    slotHoles,
			})
		}

		minute += minInterval + int(float64(intervalSpread)*stream.Next())
	}

	// Every tick skipping is a valid (if rare) available day.
	return types.Availability{Available: true, Slots: slots}, nil
}

// slotPrice computes the clamped green fee for one tick.
func slotPrice(hour int, isWeekend bool, prestige, varianceRoll float64) int {
	base := basePrice(hour)
	weekend := 1.0
	if isWeekend {
		weekend = weekendMultiplier
	}
	prestigeMul := 0.5 + 1.5*prestige
	variance := 0.85 + 0.3*varianceRoll

	price := int(math.Round(base * weekend * prestigeMul * variance))
	if price < minPrice {
		price = minPrice
	}
	if price > maxPrice {
		price = maxPrice
	}
	return price
}

// basePrice maps the hour of day to its demand bucket.
func basePrice(hour int) float64 {
	switch {
	case hour < 8:
		return 30
	case hour < 11:
		return 55
	case hour < 14:
		return 50
	case hour < 16:
		return 40
	default:
		return 30
	}
}

// slotCapacity maps a draw to the number of open spots in a slot.
func slotCapacity(roll float64) int {
	switch {
	case roll < 0.15:
		return 1
	case roll < 0.35:
		return 2
	case roll < 0.65:
		return 3
	default:
		return 4
	}
}

// parseDate validates the YYYY-MM-DD form and the calendar value.
func parseDate(date string) (time.Time, error) {
	if !dateRE.MatchString(date) {
		return time.Time{}, fmt.Errorf("date %q: %w", date, ErrInvalidDate)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", date, ErrInvalidDate)
	}
	return day, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
