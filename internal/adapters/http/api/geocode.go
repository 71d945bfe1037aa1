// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/teetrip/teetrip/internal/adapters/geocode"
	"github.com/teetrip/teetrip/internal/app"
)

// GeocodeDependencies defines the interface for address resolution.
type GeocodeDependencies interface {
	Geocode(ctx context.Context, address string) (geocode.Location, error)
}

// GeocodeHandler handles address resolution requests.
type GeocodeHandler struct {
	deps GeocodeDependencies
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(deps GeocodeDependencies) *GeocodeHandler {
	return &GeocodeHandler{deps: deps}
}

// HandleGeocode handles GET /geocode?q=address requests.
func (h *GeocodeHandler) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	const op = "api.geocode"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	loc, err := h.deps.Geocode(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrQueryTooShort):
			writeError(w, http.StatusBadRequest, "query_too_short", Wrap(op, err))
		case errors.Is(err, geocode.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		case errors.Is(err, app.ErrGeocodeDisabled):
			writeError(w, http.StatusServiceUnavailable, "geocode_disabled", Wrap(op, err))
		default:
			writeError(w, http.StatusBadGateway, "upstream_error", WrapKind(op, ErrUpstream, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, loc)
}
