package datafile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"trip-planner-service/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadPOIRecords(t *testing.T) {
	path := writeFile(t, "pois.json", `[
		{
			"identifier": "poi-1",
			"name": "Chapel Bridge",
			"city": "luzern",
			"abstract": "Wooden footbridge.",
			"description": "A covered bridge across the Reuss.",
			"photo": "https://example.test/bridge.jpg",
			"lake": true,
			"culture": true,
			"mountain": false,
			"culture_reason": "historic landmark",
			"season": ["Summer", "spring", "summer", "monsoon"],
			"season_reason": "best light in warm months",
			"classification": [
				{"name": "audience", "values": [{"title": "families"}]},
				{"name": "neededtime", "values": [{"title": "1-2 hours"}]}
			],
			"popularity": 0.9
		},
		{
			"identifier": "poi-2",
			"name": "Glacier Express",
			"city": "zermatt",
			"season": "winter"
		}
	]`)

	vocab := domain.Vocabulary{"lake", "mountain", "sport", "culture", "food"}
	records, err := LoadPOIRecords(path, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Identifier != "poi-1" || first.City != "luzern" {
		t.Fatalf("record = %+v", first)
	}
	if !first.Labels["lake"] || !first.Labels["culture"] || first.Labels["mountain"] {
		t.Fatalf("labels = %v", first.Labels)
	}
	if first.NeededTime != "1-2 hours" {
		t.Fatalf("needed time = %q, want 1-2 hours", first.NeededTime)
	}
	// Unknown seasons are dropped, duplicates collapsed, order kept.
	if len(first.Seasons) != 2 || first.Seasons[0] != "summer" || first.Seasons[1] != "spring" {
		t.Fatalf("seasons = %v", first.Seasons)
	}
	if first.SeasonReason != "best light in warm months" {
		t.Fatalf("season reason = %q", first.SeasonReason)
	}
	// Unrecognized fields survive in metadata; recognized ones do not.
	if _, ok := first.Metadata["popularity"]; !ok {
		t.Fatalf("metadata = %v, want popularity preserved", first.Metadata)
	}
	if _, ok := first.Metadata["name"]; ok {
		t.Fatalf("metadata = %v, core fields should not leak in", first.Metadata)
	}

	second := records[1]
	if second.NeededTime != "" {
		t.Fatalf("needed time = %q, want empty", second.NeededTime)
	}
	if len(second.Seasons) != 1 || second.Seasons[0] != "winter" {
		t.Fatalf("seasons = %v", second.Seasons)
	}
}

func TestLoadDistanceMatrix(t *testing.T) {
	path := writeFile(t, "distances.json", `{
		"distances": {
			"Bern, Switzerland": {
				"Zurich, Switzerland": {"distance_km": 125.2, "duration_minutes": 85.0, "status": "OK"},
				"Atlantis": {"distance_km": null, "duration_minutes": null, "status": "ZERO_RESULTS"},
				"Geneva, Switzerland": {"distance_km": 160.0, "duration_minutes": 110.0}
			}
		}
	}`)

	matrix, err := LoadDistanceMatrix(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := matrix["Bern, Switzerland"]
	if row == nil {
		t.Fatal("missing origin row")
	}

	zurich := row["Zurich, Switzerland"]
	if zurich.DistanceKM != 125.2 || zurich.DurationMinutes != 85.0 || zurich.Status != domain.StatusOK {
		t.Fatalf("zurich = %+v", zurich)
	}

	atlantis := row["Atlantis"]
	if !math.IsInf(atlantis.DistanceKM, 1) || !math.IsInf(atlantis.DurationMinutes, 1) {
		t.Fatalf("null weights should load as +Inf, got %+v", atlantis)
	}
	if atlantis.Usable() {
		t.Fatal("a ZERO_RESULTS edge must not be usable")
	}

	geneva := row["Geneva, Switzerland"]
	if geneva.Status != "UNKNOWN" {
		t.Fatalf("missing status = %q, want UNKNOWN", geneva.Status)
	}
	if geneva.Usable() {
		t.Fatal("an UNKNOWN edge must not be usable")
	}
}

func TestLoadPOIRecordsBadFile(t *testing.T) {
	path := writeFile(t, "pois.json", `{"not": "a list"}`)
	if _, err := LoadPOIRecords(path, domain.Vocabulary{"lake"}); err == nil {
		t.Fatal("expected a parse error")
	}
}
