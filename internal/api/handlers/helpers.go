package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trip-planner-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writePlanError maps planner failures onto HTTP statuses. Caller mistakes
// (bad input, unknown city, impossible trip shape) surface with their message;
// anything else stays a generic 500.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownCity),
		errors.Is(err, domain.ErrNoPath),
		errors.Is(err, domain.ErrInfeasible):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Printf("plan route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
