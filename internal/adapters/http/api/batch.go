// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teetrip/teetrip/internal/app"
)

// maxBatchCourses bounds a single batch request.
const maxBatchCourses = 100

// BatchDependencies defines the interface for batch availability queries.
type BatchDependencies interface {
	BatchAvailability(ctx context.Context, courses []app.BatchCourse, date string) ([]app.BatchResult, error)
}

// BatchHandler handles multi-course availability requests.
type BatchHandler struct {
	deps BatchDependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// batchRequest mirrors the OpenAPI schema for POST /teetimes/batch. Ratings
// overrides the shared rating for individual course ids.
type batchRequest struct {
	CourseIDs []string           `json:"courseIds"`
	Date      string             `json:"date"`
	Rating    float64            `json:"rating"`
	Ratings   map[string]float64 `json:"ratings,omitempty"`
}

func (b batchRequest) courses() []app.BatchCourse {
	courses := make([]app.BatchCourse, len(b.CourseIDs))
	for i, id := range b.CourseIDs {
		rating := b.Rating
		if r, ok := b.Ratings[id]; ok {
			rating = r
		}
		courses[i] = app.BatchCourse{ID: id, Rating: rating}
	}
	return courses
}

func (b batchRequest) validate() error {
	switch {
	case len(b.CourseIDs) == 0:
		return errors.New("missing courseIds")
	case len(b.CourseIDs) > maxBatchCourses:
		return errors.New("too many courseIds")
	case b.Date == "":
		return errors.New("missing date")
	}
	return nil
}

type batchResponse struct {
	Results []app.BatchResult `json:"results"`
}

// HandleBatch handles POST /teetimes/batch requests.
func (h *BatchHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch_teetimes"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	results, err := h.deps.BatchAvailability(r.Context(), req.courses(), req.Date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}
