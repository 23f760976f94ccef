package handlers

import (
	"courier-map-service/internal/api/dto"
	"courier-map-service/internal/domain"
	"net/http"
)

// ViewSource yields the latest applied view, nil until the first cycle.
type ViewSource interface {
	Latest() *domain.View
}

type ViewHandler struct {
	Views   ViewSource
	RouteID int
}

// Get returns the stops, zones and transitions of the latest refresh cycle.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	v := h.Views.Latest()
	if v == nil {
		writeError(w, r, http.StatusServiceUnavailable, "view not computed yet")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromView(h.RouteID, v))
}
