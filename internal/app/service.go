// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/teetrip/teetrip/internal/adapters/cache"
	"github.com/teetrip/teetrip/internal/adapters/geocode"
	"github.com/teetrip/teetrip/internal/adapters/places"
	"github.com/teetrip/teetrip/internal/domain/recommend"
	"github.com/teetrip/teetrip/internal/domain/teetime"
	"github.com/teetrip/teetrip/internal/domain/types"
	"github.com/teetrip/teetrip/pkg/logger"
	"github.com/teetrip/teetrip/pkg/metrics"
)

// Service wires the deterministic simulator, the scorer, and the optional
// upstream collaborators behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	simulator teetime.Generator
	ranker    recommend.Ranker
	memo      cache.Cache
	places    places.Lookup
	geocoder  geocode.Resolver

	// Configuration
	batchConcurrency int
	maxPlayers       int
	cacheTTL         time.Duration
	cacheMaxEntries  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBatchConcurrency bounds the fan-out of batch simulations.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithMaxPlayers caps the group size accepted by recommendations.
func WithMaxPlayers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPlayers = n
		}
	}
}

// WithCacheTTL sets how long simulated schedules are memoized.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheMaxEntries bounds the memo cache.
func WithCacheMaxEntries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheMaxEntries = n
		}
	}
}

// WithPlaces sets the course lookup client. Without one the /courses
// endpoint reports ErrPlacesDisabled; everything else keeps working.
func WithPlaces(p places.Lookup) Option {
	return func(s *Service) {
		s.places = p
	}
}

// WithGeocoder sets the address resolution client.
func WithGeocoder(g geocode.Resolver) Option {
	return func(s *Service) {
		s.geocoder = g
	}
}

// Default service configuration.
const (
	defaultCacheTTL        = 5 * time.Minute
	defaultCacheMaxEntries = 10_000
	defaultMaxPlayers      = 4
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		batchConcurrency: runtime.NumCPU() * 2,
		maxPlayers:       defaultMaxPlayers,
		cacheTTL:         defaultCacheTTL,
		cacheMaxEntries:  defaultCacheMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.simulator = teetime.NewSimulator()
	s.ranker = recommend.NewScorer(recommend.WithMaxPlayers(s.maxPlayers))
	s.memo = cache.New(
		cache.WithMaxEntries(s.cacheMaxEntries),
		cache.WithDefaultTTL(s.cacheTTL),
	)

	s.started = true
	s.logger.Info(ctx, "tee time service started",
		logger.Int("batchConcurrency", s.batchConcurrency),
		logger.Int("maxPlayers", s.maxPlayers),
		logger.Int("cacheMaxEntries", s.cacheMaxEntries),
	)
	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "tee time service stopped")
}

// Availability simulates the tee sheet for one course on one date. Results
// are memoized: repeat queries inside the TTL return the cached schedule
// without touching the simulator again.
func (s *Service) Availability(ctx context.Context, courseID, date string, rating float64) (types.Availability, error) {
	s.mu.RLock()
	sim, memo := s.simulator, s.memo
	s.mu.RUnlock()
	if sim == nil {
		return types.Availability{}, ErrNotStarted
	}

	key := availabilityKey(courseID, date, rating)
	if v, ok := memo.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		return v.(types.Availability), nil
	}
	metrics.RecordCacheMiss()

	av, err := sim.Simulate(ctx, courseID, date, rating)
	if err != nil {
		return types.Availability{}, err
	}
	metrics.RecordSimulation(av.Available, len(av.Slots))

	memo.Put(ctx, key, av, 0)
	return av, nil
}

// BatchCourse names one course inside a batch request. A zero Rating falls
// back to the simulator default.
type BatchCourse struct {
	ID     string
	Rating float64
}

// BatchResult carries one course's outcome inside a batch response. Error is
// set instead of Availability when that course's simulation failed.
type BatchResult struct {
	CourseID     string             `json:"courseId"`
	Availability types.Availability `json:"availability"`
	Error        string             `json:"error,omitempty"`
}

// BatchAvailability simulates many courses for one date with bounded
// fan-out. The result order matches the input order, and a failure for one
// course never hides the others.
func (s *Service) BatchAvailability(ctx context.Context, courses []BatchCourse, date string) ([]BatchResult, error) {
	if len(courses) == 0 {
		return nil, ErrEmptyCourseBatch
	}
	metrics.RecordBatch(len(courses))

	results := make([]BatchResult, len(courses))
	sem := make(chan struct{}, s.batchConcurrency)
	var wg sync.WaitGroup

	for i, course := range courses {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, course BatchCourse) {
			defer wg.Done()
			defer func() { <-sem }()

			av, err := s.Availability(ctx, course.ID, date, course.Rating)
			results[i] = BatchResult{CourseID: course.ID, Availability: av}
			if err != nil {
				results[i].Error = err.Error()
			}
		}(i, course)
	}
	wg.Wait()

	return results, nil
}

// Recommend simulates every candidate course for the requested date and
// ranks the playable ones for the group. Schedules come through the same
// memo cache that serves single-course availability queries.
func (s *Service) Recommend(ctx context.Context, courses []types.CourseCandidate, date string, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) ([]types.ScoredCandidate, error) {
	s.mu.RLock()
	ranker := s.ranker
	s.mu.RUnlock()
	if ranker == nil {
		return nil, ErrNotStarted
	}

	candidates := make([]recommend.Candidate, len(courses))
	errs := make([]error, len(courses))
	sem := make(chan struct{}, s.batchConcurrency)
	var wg sync.WaitGroup

	for i, course := range courses {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, course types.CourseCandidate) {
			defer wg.Done()
			defer func() { <-sem }()

			av, err := s.Availability(ctx, course.ID, date, course.Rating)
			if err != nil {
				errs[i] = err
				return
			}
			candidates[i] = recommend.Candidate{Course: course, Availability: av}
		}(i, course)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	ranked, err := ranker.Rank(ctx, candidates, players, playerCount, priceFilter)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation(len(ranked))

	s.logger.Debug(ctx, "ranked recommendation",
		logger.Int("candidates", len(courses)),
		logger.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// Courses finds golf courses near a coordinate through the places client.
func (s *Service) Courses(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error) {
	s.mu.RLock()
	lookup := s.places
	s.mu.RUnlock()
	if lookup == nil {
		return nil, ErrPlacesDisabled
	}
	return lookup.Nearby(ctx, lat, lng, radius)
}

// Geocode resolves a free-text address to a coordinate.
func (s *Service) Geocode(ctx context.Context, address string) (geocode.Location, error) {
	s.mu.RLock()
	resolver := s.geocoder
	s.mu.RUnlock()
	if resolver == nil {
		return geocode.Location{}, ErrGeocodeDisabled
	}
	return resolver.Forward(ctx, address)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"batchConcurrency": s.batchConcurrency,
		"maxPlayers":       s.maxPlayers,
		"placesEnabled":    s.places != nil,
		"geocodeEnabled":   s.geocoder != nil,
	}
	if s.started {
		stats["cacheEntries"] = s.memo.Size()
	}
	return stats
}

// availabilityKey identifies one simulated schedule in the memo cache. The
// rating is part of the key because it shapes the generated prices.
func availabilityKey(courseID, date string, rating float64) string {
	return fmt.Sprintf("sim:%s::%s::%.2f", courseID, date, rating)
}
