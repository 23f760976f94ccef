package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status     string     `json:"status"`
	LastCycle  int        `json:"last_cycle"`
	ComputedAt *time.Time `json:"computed_at,omitempty"`
}

// HealthHandler is a liveness check that also reports refresh progress.
type HealthHandler struct {
	Views ViewSource
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := healthResponse{Status: "ok"}
	if v := h.Views.Latest(); v != nil {
		at := v.ComputedAt
		res.LastCycle = v.Cycle
		res.ComputedAt = &at
	}
	writeJSON(w, r, http.StatusOK, res)
}
