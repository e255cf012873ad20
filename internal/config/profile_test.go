package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
categories: [beach, museum]
country_suffix: ", Atlantis"
city_identities:
  - distance_name: "Poseidon, Atlantis"
    poi_name: poseidon
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Categories) != 2 || p.Categories[0] != "beach" {
		t.Fatalf("categories = %v", p.Categories)
	}
	if p.CountrySuffix != ", Atlantis" {
		t.Fatalf("suffix = %q", p.CountrySuffix)
	}
	if len(p.CityIdentities) != 1 || p.CityIdentities[0].POIName != "poseidon" {
		t.Fatalf("identities = %v", p.CityIdentities)
	}
	// Fields absent from the file keep their defaults.
	if len(p.LandmarkTokens) == 0 {
		t.Fatal("landmark tokens should fall back to the default profile")
	}
}

func TestLoadProfileEmptyCategoriesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(`country_suffix: ", Atlantis"`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Categories) != 5 {
		t.Fatalf("categories = %v, want the default vocabulary", p.Categories)
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
