// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teetrip/teetrip/internal/domain/recommend"
	"github.com/teetrip/teetrip/internal/domain/types"
)

// RecommendDependencies defines the interface for recommendation queries.
type RecommendDependencies interface {
	Recommend(ctx context.Context, courses []types.CourseCandidate, date string, players []types.LatLng, playerCount int, priceFilter *types.PriceFilter) ([]types.ScoredCandidate, error)
}

// RecommendHandler handles group recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the OpenAPI schema for POST /recommend.
type recommendRequest struct {
	Courses     []types.CourseCandidate `json:"courses"`
	Date        string                  `json:"date"`
	Players     []types.LatLng          `json:"players"`
	PlayerCount int                     `json:"playerCount"`
	PriceFilter *types.PriceFilter      `json:"priceFilter,omitempty"`
}

func (r recommendRequest) validate() error {
	switch {
	case len(r.Courses) == 0:
		return errors.New("missing courses")
	case r.Date == "":
		return errors.New("missing date")
	case len(r.Players) == 0:
		return errors.New("missing players")
	}
	return nil
}

type recommendResponse struct {
	Recommendations []types.ScoredCandidate `json:"recommendations"`
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ranked, err := h.deps.Recommend(r.Context(), req.Courses, req.Date, req.Players, req.PlayerCount, req.PriceFilter)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidPlayerSet) {
			writeError(w, http.StatusBadRequest, "invalid_player_set", Wrap(op, err))
			return
		}
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: ranked})
}
