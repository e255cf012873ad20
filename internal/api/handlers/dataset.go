package handlers

import (
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/services"
)

type DatasetHandler struct {
	Planner *services.Planner
	Catalog *catalog.Catalog
}

// Cities lists the display names a plan request may use as start or end.
func (h *DatasetHandler) Cities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CitiesResponse{Cities: h.Planner.AvailableCities()})
}

// Seasons lists the seasons present in the loaded dataset.
func (h *DatasetHandler) Seasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SeasonsResponse{Seasons: h.Catalog.Seasons()})
}
