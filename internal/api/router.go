package api

import (
	"courier-map-service/internal/api/handlers"
	"courier-map-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.PackageRepository, views handlers.ViewSource, routeID int, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()

	pkgHandler := &handlers.PackageHandler{Repo: repo, RouteID: routeID}
	viewHandler := &handlers.ViewHandler{Views: views, RouteID: routeID}
	healthHandler := &handlers.HealthHandler{Views: views}

	mux.HandleFunc("/health", healthHandler.Get)
	mux.HandleFunc("/packages", pkgHandler.List)
	mux.HandleFunc("/packages/{id}/status", pkgHandler.UpdateStatus)
	mux.HandleFunc("/view", viewHandler.Get)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return loggingMiddleware(mux)
}
