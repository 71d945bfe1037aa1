package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teetrip/teetrip/internal/domain/types"
)

// Explanation building constants.
const (
	explanationSeparator = " · "
	fallbackExplanation  = "Good match for your group"

	closeMiles      = 15
	reasonableMiles = 30
	notableRating   = 4
)

// buildExplanation renders the human-readable rationale for one ranked
// course: drive verdict, earliest slot that seats the group, then rating.
func buildExplanation(sc types.ScoredCandidate) string {
	parts := []string{}

	switch {
	case sc.MaxDistance < closeMiles:
		parts = append(parts, "Close to all players")
	case sc.MaxDistance < reasonableMiles:
		parts = append(parts, "Reasonable drive for everyone")
	}

	if len(sc.FittingSlots) > 0 {
		best := sc.FittingSlots[0]
		parts = append(parts, fmt.Sprintf("%s has %d slots", clock12h(best.Time), best.Capacity))
	}

	if sc.Rating >= notableRating {
		parts = append(parts, fmt.Sprintf("%v stars", sc.Rating))
	}

	if len(parts) == 0 {
		return fallbackExplanation
	}
	return strings.Join(parts, explanationSeparator)
}

// clock12h converts an HH:MM 24-hour time to the h:MM AM/PM form shown to
// players. Malformed input comes back unchanged.
func clock12h(hhmm string) string {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return hhmm
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	switch {
	case hour > 12:
		hour -= 12
	case hour == 0:
		hour = 12
	}
	return fmt.Sprintf("%d:%s %s", hour, m, suffix)
}
