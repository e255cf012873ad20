package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, cat *catalog.Catalog) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: planner, Catalog: cat}
	datasetHandler := &handlers.DatasetHandler{Planner: planner, Catalog: cat}

	mux.HandleFunc("/health", handlers.Health(cat))
	mux.HandleFunc("/api/plan", planHandler.Plan)
	mux.HandleFunc("/api/cities", datasetHandler.Cities)
	mux.HandleFunc("/api/seasons", datasetHandler.Seasons)

	return loggingMiddleware(corsMiddleware(mux))
}
