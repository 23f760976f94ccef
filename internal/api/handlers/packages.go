package handlers

import (
	"courier-map-service/internal/api/dto"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/platform/obs"
	"courier-map-service/internal/ports"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// PackageHandler exposes package retrieval and the status mutation.
type PackageHandler struct {
	Repo    ports.PackageRepository
	RouteID int
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	pkgs, err := h.Repo.ListPackages(r.Context(), h.RouteID)
	if err != nil {
		log.Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Msg("list packages failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPackagesResponse{
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, dto.FromPackage(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// UpdateStatus handles POST /packages/{id}/status. The change becomes visible
// on the map at the next refresh cycle.
func (h *PackageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "package id must be a positive integer")
		return
	}

	var req dto.UpdateStatusRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "status must be one of pending, delivered, failed")
		return
	}

	old, err := h.Repo.UpdateStatus(r.Context(), id, status)
	if errors.Is(err, ports.ErrPackageNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Int("package_id", id).Msg("update status failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Info().
		Str("req_id", obs.RequestID(r.Context())).
		Int("package_id", id).
		Str("old_status", string(old)).
		Str("new_status", string(status)).
		Msg("package status updated")

	writeJSON(w, r, http.StatusOK, dto.UpdateStatusResponse{
		PackageID: id,
		OldStatus: string(old),
		NewStatus: string(status),
	})
}
