package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

type PlanHandler struct {
	Planner *services.Planner
	Catalog *catalog.Catalog
}

// Plan runs the full multi-day planner for one request.
// Weight normalization happens here so the core always sees weights that
// sum to one; an all-zero preference block falls back to uniform weights.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

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

	if req.Days < 1 {
		writeError(w, r, http.StatusBadRequest, "days must be at least 1")
		return
	}

	fromCity := strings.TrimSpace(req.FromCity)
	toCity := strings.TrimSpace(req.ToCity)

	startDisplay, err := h.Planner.DisplayFor(fromCity)
	if err != nil {
		writePlanError(w, r, err)
		return
	}
	endDisplay, err := h.Planner.DisplayFor(toCity)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	season, err := h.Catalog.NormalizeSeason(strings.TrimSpace(req.Season))
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	weights, err := normalizeWeights(req.Preferences, h.Catalog.Vocabulary())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rng := newRand(req.Seed)

	dayPlans, err := h.Planner.PlanRoute(startDisplay, endDisplay, req.Days, weights, season, rng)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	res := dto.PlanResponse{
		FromCity: startDisplay,
		ToCity:   endDisplay,
		NumDays:  req.Days,
		Season:   season,
		Days:     make([]dto.PlanDayResponse, 0, len(dayPlans)),
	}
	for _, day := range dayPlans {
		res.Days = append(res.Days, formatDay(day, h.Catalog.Vocabulary()))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// normalizeWeights validates a preference block against the category
// vocabulary and scales it to sum to one. All-zero preferences mean the
// caller has no opinion, so every category gets equal weight.
func normalizeWeights(prefs map[string]float64, vocab domain.Vocabulary) (map[string]float64, error) {
	if len(prefs) == 0 {
		return nil, fmt.Errorf("preferences are required")
	}

	total := 0.0
	for category, value := range prefs {
		if !vocab.Contains(category) {
			return nil, fmt.Errorf("unknown preference category %q", category)
		}
		if value < 0 {
			return nil, fmt.Errorf("preference %q must not be negative", category)
		}
		total += value
	}
	for _, category := range vocab {
		if _, ok := prefs[category]; !ok {
			return nil, fmt.Errorf("preference %q is required", category)
		}
	}

	normalized := make(map[string]float64, len(vocab))
	if total <= 0 {
		uniform := 1.0 / float64(len(vocab))
		for _, category := range vocab {
			normalized[category] = uniform
		}
		return normalized, nil
	}
	for _, category := range vocab {
		normalized[category] = prefs[category] / total
	}
	return normalized, nil
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func formatDay(day domain.DayPlan, vocab domain.Vocabulary) dto.PlanDayResponse {
	origin := day.TravelFrom
	if origin == "" {
		origin = "Start"
	}
	title := origin + " → " + day.DisplayCity

	summary := make([]string, 0, len(day.POIs))
	pois := make([]dto.PlanPOIResponse, 0, len(day.POIs))
	for _, poi := range day.POIs {
		summary = append(summary, poi.Name)

		labels := make([]string, 0, len(vocab))
		for _, category := range vocab {
			if poi.HasLabel(category) {
				labels = append(labels, category)
			}
		}

		pois = append(pois, dto.PlanPOIResponse{
			Identifier:  poi.Identifier,
			Name:        poi.Name,
			City:        poi.City,
			Labels:      labels,
			Description: poi.Description,
			Abstract:    poi.Abstract,
		})
	}

	return dto.PlanDayResponse{
		Day:           day.Day,
		Title:         title,
		FromCity:      day.TravelFrom,
		ToCity:        day.DisplayCity,
		TravelMinutes: day.TravelMinutes,
		Summary:       summary,
		Note:          day.Note,
		POIs:          pois,
	}
}
