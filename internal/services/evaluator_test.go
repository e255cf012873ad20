package services

import (
	"math"
	"strings"
	"testing"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
)

func evalTestGraph() *routegraph.Graph {
	return routegraph.New(map[string]map[string]domain.DistanceRecord{
		"Xan, Testland": {"Yor, Testland": edge(80, 90)},
		"Yor, Testland": {"Xan, Testland": edge(80, 90)},
	})
}

func evalTestEvaluator() *Evaluator {
	return NewEvaluator(evalTestGraph(), testVocab, ", Testland")
}

func twoDayPlans() []domain.DayPlan {
	return []domain.DayPlan{
		{
			Day:          1,
			DistanceCity: "Xan, Testland",
			DisplayCity:  "Xan",
			POIs: []*domain.POI{
				testPOI("x1", "Azure Shore Promenade", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"}),
			},
		},
		{
			Day:           2,
			DistanceCity:  "Yor, Testland",
			DisplayCity:   "Yor",
			TravelFrom:    "Xan",
			TravelMinutes: 90,
			POIs: []*domain.POI{
				testPOI("y1", "Old Quarter Museum", domain.BucketTwoToFourHours, []string{"culture"}, []string{"summer"}),
			},
		},
	}
}

func TestEvaluateComponentMath(t *testing.T) {
	e := evalTestEvaluator()
	interests := map[string]float64{"lake": 0.5, "culture": 0.5}

	score := e.Evaluate(twoDayPlans(), "Xan, Testland", "Yor, Testland", interests, MaxDailyTimeUnits, "summer")
	if len(score.HardViolations) != 0 {
		t.Fatalf("unexpected hard violations: %v", score.HardViolations)
	}

	// Observed primary-category shares match the targets exactly.
	want := map[string]float64{
		ComponentInterestMatching: 1.0,
		// 2 distinct cities over 2 days: (2-1)/(min(2,8)) = 0.5
		ComponentCityVisitEfficiency: 0.5,
		// only Yor counts, at the graph's maximum duration from Xan
		ComponentGeographicCoverage: 1.0,
		// day TUs are 4 and 6 against an MTU of 8
		ComponentTUUtilization: 0.625,
		// both legs are at most 120 minutes
		ComponentLongTravelPenalty: 1.0,
	}
	for name, value := range want {
		if got := score.Components[name]; math.Abs(got-value) > 1e-9 {
			t.Fatalf("%s = %v, want %v", name, got, value)
		}
	}

	wantTotal := 100 * (0.35*1.0 + 0.20*0.625 + 0.15*0.5 + 0.15*1.0 + 0.15*1.0)
	if math.Abs(score.Total-wantTotal) > 1e-9 {
		t.Fatalf("total = %v, want %v", score.Total, wantTotal)
	}
}

func TestEvaluateHardViolationsZeroTheScore(t *testing.T) {
	e := evalTestEvaluator()
	interests := map[string]float64{"lake": 1}

	t.Run("wrong start city", func(t *testing.T) {
		score := e.Evaluate(twoDayPlans(), "Yor, Testland", "Yor, Testland", interests, MaxDailyTimeUnits, "summer")
		if score.Total != 0 || len(score.HardViolations) == 0 {
			t.Fatalf("expected a zeroed score, got %+v", score)
		}
		if !containsSubstring(score.HardViolations, "day 1") {
			t.Fatalf("violations = %v, want a day-1 start violation", score.HardViolations)
		}
	})

	t.Run("POI out of season", func(t *testing.T) {
		score := e.Evaluate(twoDayPlans(), "Xan, Testland", "Yor, Testland", interests, MaxDailyTimeUnits, "winter")
		if score.Total != 0 || !containsSubstring(score.HardViolations, "out of season") {
			t.Fatalf("expected out-of-season violations, got %+v", score)
		}
	})

	t.Run("day TU over MTU", func(t *testing.T) {
		score := e.Evaluate(twoDayPlans(), "Xan, Testland", "Yor, Testland", interests, 2, "summer")
		if score.Total != 0 || !containsSubstring(score.HardViolations, "exceeds MTU") {
			t.Fatalf("expected TU violations, got %+v", score)
		}
	})

	t.Run("empty itinerary", func(t *testing.T) {
		score := e.Evaluate(nil, "Xan, Testland", "Yor, Testland", interests, MaxDailyTimeUnits, "summer")
		if score.Total != 0 || !containsSubstring(score.HardViolations, "empty") {
			t.Fatalf("expected an empty-itinerary violation, got %+v", score)
		}
	})
}

func TestEvaluateRevisitRules(t *testing.T) {
	e := evalTestEvaluator()
	interests := map[string]float64{"lake": 1}

	day := func(n int, city string) domain.DayPlan {
		return domain.DayPlan{Day: n, DistanceCity: city + ", Testland", DisplayCity: city}
	}

	t.Run("loop trips may close at the start", func(t *testing.T) {
		plans := []domain.DayPlan{day(1, "Xan"), day(2, "Yor"), day(3, "Xan")}
		score := e.Evaluate(plans, "Xan, Testland", "Xan, Testland", interests, MaxDailyTimeUnits, "summer")
		if len(score.HardViolations) != 0 {
			t.Fatalf("unexpected violations on a loop trip: %v", score.HardViolations)
		}
	})

	t.Run("split city blocks are violations", func(t *testing.T) {
		plans := []domain.DayPlan{day(1, "Xan"), day(2, "Yor"), day(3, "Xan"), day(4, "Yor")}
		score := e.Evaluate(plans, "Xan, Testland", "Yor, Testland", interests, MaxDailyTimeUnits, "summer")
		if !containsSubstring(score.HardViolations, "revisited") {
			t.Fatalf("expected revisit violations, got %v", score.HardViolations)
		}
	})
}

func containsSubstring(values []string, substr string) bool {
	for _, v := range values {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}
