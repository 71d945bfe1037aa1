// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/teetrip/teetrip/internal/adapters/geocode"
	"github.com/teetrip/teetrip/internal/app"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Availability simulates the tee sheet for one course on one date.
	Availability(ctx context.Context, courseID, date string, rating float64) (types.Availability, error)

	// BatchAvailability simulates many courses for one date.
	BatchAvailability(ctx context.Context, courses []app.BatchCourse, date string) ([]app.BatchResult, error)

	// Recommend ranks candidate courses for a group of players.
	Recommend(ctx context.Context, courses []types.CourseCandidate, date string, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) ([]types.ScoredCandidate, error)

	// Courses finds golf courses near a coordinate.
	Courses(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error)

	// Geocode resolves a free-text address to a coordinate.
	Geocode(ctx context.Context, address string) (geocode.Location, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	teeTimesHandler  *TeeTimesHandler
	batchHandler     *BatchHandler
	recommendHandler *RecommendHandler
	coursesHandler   *CoursesHandler
	geocodeHandler   *GeocodeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		teeTimesHandler:  NewTeeTimesHandler(deps),
		batchHandler:     NewBatchHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
		coursesHandler:   NewCoursesHandler(deps),
		geocodeHandler:   NewGeocodeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	wrap := func(next http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
	}

	mux.HandleFunc("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/teetimes/batch", wrap(s.batchHandler.HandleBatch, "teetimes_batch"))
	mux.HandleFunc("/teetimes", wrap(s.teeTimesHandler.HandleGetTeeTimes, "teetimes"))
	mux.HandleFunc("/recommend", wrap(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/courses", wrap(s.coursesHandler.HandleGetCourses, "courses"))
	mux.HandleFunc("/geocode", wrap(s.geocodeHandler.HandleGeocode, "geocode"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
