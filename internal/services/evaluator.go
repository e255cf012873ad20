package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
)

// Soft component names in the score breakdown.
const (
	ComponentInterestMatching    = "interest_matching"
	ComponentCityVisitEfficiency = "city_visit_efficiency"
	ComponentGeographicCoverage  = "geographic_coverage"
	ComponentTUUtilization       = "tu_utilization"
	ComponentLongTravelPenalty   = "long_travel_penalty"
)

// Evaluator validates a completed itinerary against the hard rules and
// scores the soft objectives. It re-checks constraints independently of
// the planner; the planner's pruning is a heuristic, not a guarantee.
type Evaluator struct {
	graph         *routegraph.Graph
	vocab         domain.Vocabulary
	countrySuffix string
}

func NewEvaluator(graph *routegraph.Graph, vocab domain.Vocabulary, countrySuffix string) *Evaluator {
	return &Evaluator{graph: graph, vocab: vocab, countrySuffix: countrySuffix}
}

// Evaluate produces the score breakdown for a completed itinerary. Any
// hard-constraint violation zeroes the total and suppresses the soft
// components. MTU is the caller's per-day TU ceiling; interests may be
// raw weights or percentages, they are normalized internally.
func (e *Evaluator) Evaluate(dayPlans []domain.DayPlan, startCity, endCity string, interests map[string]float64, mtu int, season string) domain.ScoreBreakdown {
	if len(dayPlans) == 0 {
		return domain.ScoreBreakdown{HardViolations: []string{"empty itinerary"}}
	}

	violations := e.hardViolations(dayPlans, startCity, endCity, mtu, season)
	if len(violations) > 0 {
		return domain.ScoreBreakdown{HardViolations: violations}
	}

	days := len(dayPlans)
	var allPOIs []*domain.POI
	for _, dp := range dayPlans {
		allPOIs = append(allPOIs, dp.POIs...)
	}

	components := map[string]float64{
		ComponentInterestMatching:    e.interestMatching(allPOIs, interests),
		ComponentCityVisitEfficiency: cityVisitEfficiency(dayPlans, days),
		ComponentGeographicCoverage:  e.geographicCoverage(dayPlans, startCity),
		ComponentTUUtilization:       tuUtilization(dayPlans, mtu),
		ComponentLongTravelPenalty:   longTravelPenalty(dayPlans),
	}

	total := 100 * (0.35*components[ComponentInterestMatching] +
		0.20*components[ComponentTUUtilization] +
		0.15*components[ComponentCityVisitEfficiency] +
		0.15*components[ComponentGeographicCoverage] +
		0.15*components[ComponentLongTravelPenalty])

	return domain.ScoreBreakdown{Total: total, Components: components}
}

func (e *Evaluator) hardViolations(dayPlans []domain.DayPlan, startCity, endCity string, mtu int, season string) []string {
	var violations []string

	if e.normalizeCityName(dayPlans[0].DistanceCity) != e.normalizeCityName(startCity) {
		violations = append(violations, "day 1 not in start city")
	}
	if e.normalizeCityName(dayPlans[len(dayPlans)-1].DistanceCity) != e.normalizeCityName(endCity) {
		violations = append(violations, "last day not in end city")
	}

	if revisited := e.revisitedCities(dayPlans, startCity, endCity); len(revisited) > 0 {
		violations = append(violations, "revisited cities: "+strings.Join(revisited, ", "))
	}

	for _, dp := range dayPlans {
		for _, poi := range dp.POIs {
			if !poi.InSeason(season) {
				violations = append(violations, fmt.Sprintf("POI out of season: %s", poi.Name))
			}
		}
		if tu := dp.TimeUnits(); tu > mtu {
			violations = append(violations, fmt.Sprintf("day TU exceeds MTU: %s TU=%d MTU=%d", dp.DisplayCity, tu, mtu))
		}
	}

	return violations
}

// revisitedCities finds cities split across non-contiguous day blocks.
// Loop trips may split the start city into exactly two blocks, one opening
// the trip and one closing it.
func (e *Evaluator) revisitedCities(dayPlans []domain.DayPlan, startCity, endCity string) []string {
	type span struct{ start, end int }
	blocks := map[string][]span{}

	current := dayPlans[0].DistanceCity
	blockStart := 1
	for i := 1; i < len(dayPlans); i++ {
		if city := dayPlans[i].DistanceCity; city != current {
			blocks[current] = append(blocks[current], span{blockStart, i})
			current = city
			blockStart = i + 1
		}
	}
	blocks[current] = append(blocks[current], span{blockStart, len(dayPlans)})

	startNorm := e.normalizeCityName(startCity)
	loopTrip := startNorm == e.normalizeCityName(endCity)

	var out []string
	for city, spans := range blocks {
		if len(spans) <= 1 {
			continue
		}
		if loopTrip && e.normalizeCityName(city) == startNorm &&
			len(spans) == 2 && spans[0].start == 1 && spans[1].end == len(dayPlans) {
			continue
		}
		out = append(out, city)
	}
	sort.Strings(out)
	return out
}

// interestMatching compares each category's observed share of primary
// categories against its normalized target share.
func (e *Evaluator) interestMatching(allPOIs []*domain.POI, interests map[string]float64) float64 {
	n := len(allPOIs)
	if n == 0 || len(e.vocab) == 0 {
		return 0
	}

	desiredTotal := 0.0
	for _, category := range e.vocab {
		desiredTotal += interests[category]
	}
	target := make(map[string]float64, len(e.vocab))
	for _, category := range e.vocab {
		if desiredTotal > 0 {
			target[category] = interests[category] / desiredTotal
		} else {
			target[category] = 1.0 / float64(len(e.vocab))
		}
	}

	counts := map[string]int{}
	for _, poi := range allPOIs {
		if category, ok := poi.PrimaryCategory(e.vocab); ok {
			counts[category]++
		}
	}

	sum := 0.0
	for _, category := range e.vocab {
		observed := float64(counts[category]) / float64(n)
		denom := math.Max(target[category], 1.0/float64(n))
		sum += math.Max(0, 1-math.Abs(observed-target[category])/denom)
	}
	return sum / float64(len(e.vocab))
}

// cityVisitEfficiency rewards distinct cities against a trip-length target.
func cityVisitEfficiency(dayPlans []domain.DayPlan, days int) float64 {
	seen := map[string]struct{}{}
	for _, dp := range dayPlans {
		seen[dp.DistanceCity] = struct{}{}
	}
	unique := len(seen)

	targetCities := 1 + min(days, 8)
	denom := max(1, targetCities-1)
	score := float64(max(0, unique-1)) / float64(denom)
	return math.Min(1, score)
}

// geographicCoverage averages sqrt(normalized shortest duration from the
// start) over visited cities, excluding the start itself.
func (e *Evaluator) geographicCoverage(dayPlans []domain.DayPlan, startCity string) float64 {
	sp := e.graph.ShortestFrom(dayPlans[0].DistanceCity, routegraph.Duration)
	if sp == nil {
		return 0
	}

	maxFinite := 0.0
	for _, minutes := range sp {
		if !math.IsInf(minutes, 1) && minutes > maxFinite {
			maxFinite = minutes
		}
	}
	if maxFinite <= 0 {
		return 0
	}

	startNorm := e.normalizeCityName(startCity)
	seen := map[string]struct{}{}
	var values []float64
	for _, dp := range dayPlans {
		city := dp.DistanceCity
		if _, dup := seen[city]; dup {
			continue
		}
		seen[city] = struct{}{}
		if e.normalizeCityName(city) == startNorm {
			continue
		}
		minutes, ok := sp[city]
		if !ok || math.IsInf(minutes, 1) {
			continue
		}
		normalized := math.Max(0, math.Min(1, minutes/maxFinite))
		values = append(values, math.Sqrt(normalized))
	}

	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// tuUtilization rewards days whose TU total sits close to the MTU.
func tuUtilization(dayPlans []domain.DayPlan, mtu int) float64 {
	sum := 0.0
	for _, dp := range dayPlans {
		sum += math.Max(0, 1-math.Abs(float64(dp.TimeUnits()-mtu))/float64(mtu))
	}
	return sum / float64(len(dayPlans))
}

// longTravelPenalty scores each day 1.0 up to 120 minutes of travel, with
// a Gaussian falloff beyond.
func longTravelPenalty(dayPlans []domain.DayPlan) float64 {
	sum := 0.0
	for _, dp := range dayPlans {
		m := dp.TravelMinutes
		if m <= 120 {
			sum += 1
			continue
		}
		x := (m - 120) / 30
		sum += math.Exp(-x * x)
	}
	return sum / float64(len(dayPlans))
}

func (e *Evaluator) normalizeCityName(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.TrimSuffix(v, strings.ToLower(e.countrySuffix))
}
