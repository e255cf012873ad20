package handlers

import (
	"net/http"

	"trip-planner-service/internal/catalog"
)

// Health reports liveness plus the size of the loaded dataset, so a probe
// can tell an empty database apart from a healthy one.
func Health(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		cities := len(cat.Cities())
		status := "ok"
		if cities == 0 {
			status = "empty dataset"
		}

		res := map[string]any{"status": status, "cities": cities}
		writeJSON(w, r, http.StatusOK, res)
	}
}
