// Package recommend ranks candidate courses for a group of players.
//
// The score blends four signals: how far the farthest player has to drive,
// how evenly that drive is spread across the group, how many tee times can
// actually seat the group, and course quality. Everything is a pure function
// of its inputs; the ranked list is rebuilt on every call.
package recommend

import (
	"context"
	"math"
	"sort"

	"github.com/teetrip/teetrip/internal/domain/geo"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// Scoring weights and bounds.
const (
	defaultMaxResults = 5
	defaultMaxPlayers = 4

	// Component weights for the blended total.
	distFairnessWeight = 0.4
	fitWeight          = 0.3
	ratingWeight       = 0.2
	priceWeight        = 0.1

	// Distance and fairness mix inside the drive component.
	distShare     = 0.7
	fairnessShare = 0.3

	fitScoreCap       = 50
	fitScorePerSlot   = 5
	neutralPriceScore = 25

	// Courses with no rating are treated as middling.
	fallbackRating = 3
)

// Candidate pairs a course with its generated availability for the day.
type Candidate struct {
	Course       types.CourseCandidate
	Availability types.Availability
}

// Ranker orders candidates for a group of players.
type Ranker interface {
	// Rank returns at most the configured number of scored candidates,
	// best first. priceFilter may be nil.
	Rank(ctx context.Context, candidates []Candidate, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) ([]types.ScoredCandidate, error)
}

// Scorer implements Ranker with the weighted fairness/availability/quality
// objective.
type Scorer struct {
	maxResults int
	maxPlayers int
}

// NewScorer creates a Scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		maxResults: defaultMaxResults,
		maxPlayers: defaultMaxPlayers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank scores and orders the candidates. Candidates without an available,
// non-empty schedule are dropped before scoring; an empty result is not an
// error. An empty or oversized player set is rejected before any work.
func (s *Scorer) Rank(_ context.Context, candidates []Candidate, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) ([]types.ScoredCandidate, error) {
	if len(players) == 0 || len(players) > s.maxPlayers {
		return nil, ErrInvalidPlayerSet
	}
	if playerCount < 1 {
		playerCount = len(players)
	}

	scored := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Availability.Available || len(c.Availability.Slots) == 0 {
			continue
		}
		scored = append(scored, s.scoreCandidate(c, players, playerCount, priceFilter))
	}

	// Stable sort keeps input order on score ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > s.maxResults {
		scored = scored[:s.maxResults]
	}
	return scored, nil
}

// scoreCandidate computes the blended score for one course. Distances are
// scored in kilometers and surfaced to callers in miles.
func (s *Scorer) scoreCandidate(c Candidate, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) types.ScoredCandidate {
	course := types.LatLng{Lat: c.Course.Lat, Lng: c.Course.Lng}

	distancesKm := make([]float64, len(players))
	minKm, maxKm, sumKm := math.MaxFloat64, 0.0, 0.0
	for i, p := range players {
		d := geo.Distance(p, course)
		distancesKm[i] = d
		minKm = math.Min(minKm, d)
		maxKm = math.Max(maxKm, d)
		sumKm += d
	}
	avgKm := sumKm / float64(len(players))

	fitting := fittingSlots(c.Availability.Slots, playerCount)

	distScore := math.Max(0, 100-1.5*maxKm)
	fairnessBonus := math.Max(0, 50-2*(maxKm-minKm))
	distFairness := distShare*distScore + fairnessShare*fairnessBonus

	fitScore := math.Min(float64(fitScorePerSlot*len(fitting)), fitScoreCap)

	rating := c.Course.Rating
	if rating == 0 {
		rating = fallbackRating
	}
	ratingScore := rating * 10

	total := distFairnessWeight*distFairness +
		fitWeight*fitScore +
		ratingWeight*ratingScore +
		priceWeight*priceScore(fitting, priceFilter)

	sc := types.ScoredCandidate{
		CourseCandidate: c.Course,
		Distances:       milesOf(distancesKm),
		MaxDistance:     geo.KmToMiles(maxKm),
		AvgDistance:     geo.KmToMiles(avgKm),
		FittingSlots:    fitting,
		Score:           total,
	}
	sc.Explanation = buildExplanation(sc)
	return sc
}

// priceScore rewards fitting slots whose average fee lands near the middle
// of the group's budget. With no filter or no fitting slots it stays neutral.
func priceScore(fitting []types.TimeSlot, filter *types.PriceFilter) float64 {
	if filter == nil || len(fitting) == 0 {
		return neutralPriceScore
	}
	total := 0
	for _, slot := range fitting {
		total += slot.Price
	}
	avg := float64(total) / float64(len(fitting))
	mid := float64(filter.Min+filter.Max) / 2
	return math.Max(0, 50-0.5*math.Abs(avg-mid))
}

// fittingSlots keeps slots that can seat the whole group, in schedule order.
func fittingSlots(slots []types.TimeSlot, playerCount int) []types.TimeSlot {
	fitting := []types.TimeSlot{}
	for _, slot := range slots {
		if slot.Capacity >= playerCount {
			fitting = append(fitting, slot)
		}
	}
	return fitting
}

func milesOf(km []float64) []float64 {
	miles := make([]float64, len(km))
	for i, d := range km {
		miles[i] = geo.KmToMiles(d)
	}
	return miles
}
