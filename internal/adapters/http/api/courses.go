// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/teetrip/teetrip/internal/adapters/places"
	"github.com/teetrip/teetrip/internal/app"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// CoursesDependencies defines the interface for course lookups.
type CoursesDependencies interface {
	Courses(ctx context.Context, lat, lng float64, radius int) ([]types.CourseCandidate, error)
}

// CoursesHandler handles nearby course lookup requests.
type CoursesHandler struct {
	deps CoursesDependencies
}

// NewCoursesHandler creates a new courses handler.
func NewCoursesHandler(deps CoursesDependencies) *CoursesHandler {
	return &CoursesHandler{deps: deps}
}

type coursesResponse struct {
	Courses []types.CourseCandidate `json:"courses"`
}

// HandleGetCourses handles GET /courses?lat=X&lng=Y&radius=M requests.
func (h *CoursesHandler) HandleGetCourses(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_courses"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	radius := 0
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		var err error
		radius, err = strconv.Atoi(radiusStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}

	courses, err := h.deps.Courses(r.Context(), lat, lng, radius)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPlacesDisabled), errors.Is(err, places.ErrNoAPIKey):
			writeError(w, http.StatusServiceUnavailable, "places_disabled", Wrap(op, err))
		case errors.Is(err, places.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "quota_exceeded", Wrap(op, err))
		default:
			writeError(w, http.StatusBadGateway, "upstream_error", WrapKind(op, ErrUpstream, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, coursesResponse{Courses: courses})
}
