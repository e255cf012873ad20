package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
)

func edge(km, minutes float64) domain.DistanceRecord {
	return domain.DistanceRecord{DistanceKM: km, DurationMinutes: minutes, Status: domain.StatusOK}
}

func testMapping(cities ...string) CityMapping {
	distanceToPOI := make(map[string]string, len(cities))
	for _, city := range cities {
		distanceToPOI[title(city)+", Testland"] = city
	}
	return CityMapping{
		CountrySuffix: ", Testland",
		DistanceToPOI: distanceToPOI,
	}
}

// cityPool builds four mutually dissimilar POIs whose buckets add up to a
// full day with or without a travel leg.
func cityPool(city, prefix string) []*domain.POI {
	pois := []*domain.POI{
		testPOI(prefix+"1", prefix+" Summit Trail", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"}),
		testPOI(prefix+"2", prefix+" Harbor Hall", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"}),
		testPOI(prefix+"3", prefix+" Garden Court", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"}),
		testPOI(prefix+"4", prefix+" River Promenade", domain.BucketOneToTwoHours, []string{"lake"}, []string{"summer"}),
	}
	for _, poi := range pois {
		poi.City = city
	}
	return pois
}

func TestPlanRouteTwoDayTrip(t *testing.T) {
	graph := routegraph.New(map[string]map[string]domain.DistanceRecord{
		"Xan, Testland": {"Yor, Testland": edge(80, 90)},
		"Yor, Testland": {"Xan, Testland": edge(80, 90)},
	})
	cat := catalog.New(map[string][]*domain.POI{
		"xan": {testPOI("x1", "Granite Falls Ascent", domain.BucketFourToEightHours, []string{"lake"}, []string{"summer"})},
		"yor": {testPOI("y1", "Old Quarter Museum", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"})},
	}, testVocab)

	planner := NewPlanner(cat, graph, newTestSelector(), testMapping("xan", "yor"))

	plans, err := planner.PlanRoute("Xan", "Yor", 2, map[string]float64{"lake": 1}, "summer", testRand(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 days, got %d", len(plans))
	}

	day1 := plans[0]
	if day1.DisplayCity != "Xan" || day1.TravelMinutes != 0 {
		t.Fatalf("day 1 = %+v, want a travel-free day at Xan", day1)
	}
	if len(day1.POIs) != 1 || day1.POIs[0].Identifier != "x1" {
		t.Fatalf("day 1 POIs = %v, want [x1]", ids(day1.POIs))
	}

	day2 := plans[1]
	if day2.DisplayCity != "Yor" {
		t.Fatalf("day 2 city = %q, want Yor", day2.DisplayCity)
	}
	if day2.TravelFrom != "Xan" || day2.TravelMinutes != 90 {
		t.Fatalf("day 2 leg = %q/%v, want Xan/90", day2.TravelFrom, day2.TravelMinutes)
	}
	if day2.Note != "final day at destination" {
		t.Fatalf("day 2 note = %q", day2.Note)
	}
}

func TestPlanRouteLowActivityDayMovesWithArrival(t *testing.T) {
	graph := routegraph.New(map[string]map[string]domain.DistanceRecord{
		"Xan, Testland": {"Yor, Testland": edge(80, 90)},
		"Yor, Testland": {"Xan, Testland": edge(80, 90)},
	})
	// Xan offers a single short visit, far under the preferred band, so the
	// first day is rewritten into a move with activities at the arrival city.
	cat := catalog.New(map[string][]*domain.POI{
		"xan": {testPOI("x1", "Tiny Overlook", domain.BucketUnderOneHour, []string{"lake"}, []string{"summer"})},
		"yor": {testPOI("y1", "Old Quarter Museum", domain.BucketTwoToFourHours, []string{"lake"}, []string{"summer"})},
	}, testVocab)
	planner := NewPlanner(cat, graph, newTestSelector(), testMapping("xan", "yor"))

	plans, err := planner.PlanRoute("Xan", "Yor", 2, map[string]float64{"lake": 1}, "summer", testRand(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 days, got %d", len(plans))
	}

	day1 := plans[0]
	if day1.Note != "moved due to low TU" {
		t.Fatalf("day 1 note = %q, want the low-TU move note", day1.Note)
	}
	if day1.DisplayCity != "Yor" || day1.TravelFrom != "Xan" || day1.TravelMinutes != 90 {
		t.Fatalf("day 1 = %+v, want a rewritten Xan->Yor move", day1)
	}
	if len(day1.POIs) != 1 || day1.POIs[0].Identifier != "y1" {
		t.Fatalf("day 1 POIs = %v, want activities at the arrival city", ids(day1.POIs))
	}
	for _, day := range plans {
		if day.TimeUnits() > MaxDailyTimeUnits {
			t.Fatalf("day %d uses %d time units, over the ceiling", day.Day, day.TimeUnits())
		}
	}
	if plans[1].DisplayCity != "Yor" || plans[1].TravelMinutes != 0 {
		t.Fatalf("day 2 = %+v, want a travel-free final day at Yor", plans[1])
	}
}

func TestPlanRouteLoopTrip(t *testing.T) {
	planner := loopTestPlanner()

	plans, err := planner.PlanRoute("Xan", "Xan", 5, map[string]float64{"lake": 1}, "summer", testRand(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 5 {
		t.Fatalf("expected 5 days, got %d", len(plans))
	}
	if plans[0].DisplayCity != "Xan" {
		t.Fatalf("day 1 city = %q, want Xan", plans[0].DisplayCity)
	}
	if plans[4].DisplayCity != "Xan" {
		t.Fatalf("day 5 city = %q, want Xan", plans[4].DisplayCity)
	}

	seen := map[string]bool{}
	for _, day := range plans[1:4] {
		if day.DisplayCity == "Xan" {
			t.Fatalf("intermediate day back at the start: %+v", day)
		}
		if seen[day.DisplayCity] {
			t.Fatalf("intermediate city %q visited twice", day.DisplayCity)
		}
		seen[day.DisplayCity] = true
	}

	score, err := planner.Evaluate(plans, "Xan", "Xan", map[string]float64{"lake": 1}, MaxDailyTimeUnits, "summer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(score.HardViolations) != 0 {
		t.Fatalf("hard violations on a loop trip: %v", score.HardViolations)
	}
	if score.Total <= 0 {
		t.Fatalf("score = %v, want > 0", score.Total)
	}
}

func TestPlanRouteDeterministicUnderFixedSeed(t *testing.T) {
	planner := loopTestPlanner()
	weights := map[string]float64{"lake": 1}

	first, err := planner.PlanRoute("Xan", "Xan", 5, weights, "summer", testRand(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := planner.PlanRoute("Xan", "Xan", 5, weights, "summer", testRand(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different itineraries:\n%v\n%v", first, second)
	}
}

func TestPlanRouteUnknownCity(t *testing.T) {
	planner := loopTestPlanner()

	_, err := planner.PlanRoute("Atlantis", "Xan", 3, map[string]float64{"lake": 1}, "summer", testRand(1))
	if !errors.Is(err, domain.ErrUnknownCity) {
		t.Fatalf("expected an unknown-city error, got %v", err)
	}

	var planErr *domain.PlanError
	if !errors.As(err, &planErr) || planErr.City != "Atlantis" {
		t.Fatalf("expected the error to carry the city name, got %#v", err)
	}
}

func TestPlanRouteZeroWeights(t *testing.T) {
	planner := loopTestPlanner()

	_, err := planner.PlanRoute("Xan", "Xan", 3, map[string]float64{"lake": 0}, "summer", testRand(1))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestPlanRouteNoPath(t *testing.T) {
	graph := routegraph.New(map[string]map[string]domain.DistanceRecord{
		"Xan, Testland": {"Yor, Testland": {DistanceKM: math.Inf(1), DurationMinutes: math.Inf(1), Status: "ZERO_RESULTS"}},
	})
	cat := catalog.New(map[string][]*domain.POI{
		"xan": cityPool("xan", "Xenia"),
		"yor": cityPool("yor", "Yarrow"),
	}, testVocab)
	planner := NewPlanner(cat, graph, newTestSelector(), testMapping("xan", "yor"))

	_, err := planner.PlanRoute("Xan", "Yor", 3, map[string]float64{"lake": 1}, "summer", testRand(1))
	if !errors.Is(err, domain.ErrNoPath) {
		t.Fatalf("expected a no-path error, got %v", err)
	}
}

func TestPlanRouteNotEnoughDays(t *testing.T) {
	// One long hop: reachable, but not within a single day's travel cap.
	graph := routegraph.New(map[string]map[string]domain.DistanceRecord{
		"Xan, Testland": {"Yor, Testland": edge(500, 600)},
		"Yor, Testland": {"Xan, Testland": edge(500, 600)},
	})
	cat := catalog.New(map[string][]*domain.POI{
		"xan": cityPool("xan", "Xenia"),
		"yor": cityPool("yor", "Yarrow"),
	}, testVocab)
	planner := NewPlanner(cat, graph, newTestSelector(), testMapping("xan", "yor"))

	_, err := planner.PlanRoute("Xan", "Yor", 2, map[string]float64{"lake": 1}, "summer", testRand(1))
	if !errors.Is(err, domain.ErrInfeasible) {
		t.Fatalf("expected an infeasible error, got %v", err)
	}
}

// loopTestPlanner wires a complete four-city graph with identical legs and
// a full POI pool per city.
func loopTestPlanner() *Planner {
	cities := []string{"xan", "ardo", "brel", "cove"}
	prefixes := map[string]string{"xan": "Xenia", "ardo": "Arden", "brel": "Briar", "cove": "Cedar"}

	records := map[string]map[string]domain.DistanceRecord{}
	for _, from := range cities {
		row := map[string]domain.DistanceRecord{}
		for _, to := range cities {
			if from == to {
				continue
			}
			row[title(to)+", Testland"] = edge(50, 90)
		}
		records[title(from)+", Testland"] = row
	}

	pools := map[string][]*domain.POI{}
	for _, city := range cities {
		pools[city] = cityPool(city, prefixes[city])
	}

	graph := routegraph.New(records)
	cat := catalog.New(pools, testVocab)

	distanceToPOI := map[string]string{}
	for _, city := range cities {
		distanceToPOI[title(city)+", Testland"] = city
	}
	mapping := CityMapping{CountrySuffix: ", Testland", DistanceToPOI: distanceToPOI}

	return NewPlanner(cat, graph, newTestSelector(), mapping)
}

func title(city string) string {
	if city == "" {
		return city
	}
	return fmt.Sprintf("%c%s", city[0]-'a'+'A', city[1:])
}
