// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/teetrip/teetrip/internal/domain/teetime"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// TeeTimesDependencies defines the interface for availability queries.
type TeeTimesDependencies interface {
	Availability(ctx context.Context, courseID, date string, rating float64) (types.Availability, error)
}

// TeeTimesHandler handles single-course availability requests.
type TeeTimesHandler struct {
	deps TeeTimesDependencies
}

// NewTeeTimesHandler creates a new tee times handler.
func NewTeeTimesHandler(deps TeeTimesDependencies) *TeeTimesHandler {
	return &TeeTimesHandler{deps: deps}
}

// HandleGetTeeTimes handles GET /teetimes?courseId=X&date=YYYY-MM-DD&rating=N requests.
func (h *TeeTimesHandler) HandleGetTeeTimes(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teetimes"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	courseID := r.URL.Query().Get("courseId")
	date := r.URL.Query().Get("date")
	if courseID == "" || date == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var rating float64
	if ratingStr := r.URL.Query().Get("rating"); ratingStr != "" {
		var err error
		rating, err = strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}

	av, err := h.deps.Availability(r.Context(), courseID, date, rating)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, av)
}

// writeDomainError translates simulator validation failures to 400 and
// everything else to 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, teetime.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", Wrap(op, err))
	case errors.Is(err, teetime.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, "invalid_rating", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
