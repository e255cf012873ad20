package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CityIdentity maps a city's distance-graph name onto its POI-dataset name.
// The two datasets were produced by different pipelines and disagree on
// naming (e.g. "Lucerne, Switzerland" vs "luzern").
type CityIdentity struct {
	DistanceName string `yaml:"distance_name"`
	POIName      string `yaml:"poi_name"`
}

// Profile is the planner's dataset-dependent configuration: the category
// vocabulary of the active dataset revision, the name-similarity word
// lists, and the city identity/alias tables. It is loaded from YAML next
// to the datasets so the core stays agnostic to dataset revisions.
type Profile struct {
	Categories          []string          `yaml:"categories"`
	CountrySuffix       string            `yaml:"country_suffix"`
	CityIdentities      []CityIdentity    `yaml:"city_identities"`
	ExtraAliases        map[string]string `yaml:"extra_aliases"`
	SimilarityStopwords []string          `yaml:"similarity_stopwords"`
	LandmarkTokens      []string          `yaml:"landmark_tokens"`
}

// LoadProfile reads a planner profile from a YAML file. Fields left empty
// in the file fall back to the defaults of the current dataset revision.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: read %q: %w", path, err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("load profile: parse %q: %w", path, err)
	}
	if len(p.Categories) == 0 {
		p.Categories = DefaultProfile().Categories
	}
	return p, nil
}

// DefaultProfile matches the Swiss dataset revision bundled with the
// repository.
func DefaultProfile() *Profile {
	return &Profile{
		Categories:    []string{"lake", "mountain", "sport", "culture", "food"},
		CountrySuffix: ", Switzerland",
		CityIdentities: []CityIdentity{
			{DistanceName: "Appenzell, Switzerland", POIName: "appenzell"},
			{DistanceName: "Bern, Switzerland", POIName: "bern"},
			{DistanceName: "Geneva, Switzerland", POIName: "geneva"},
			{DistanceName: "Interlaken, Switzerland", POIName: "interlaken"},
			{DistanceName: "Kandersteg, Switzerland", POIName: "kandersteg"},
			{DistanceName: "Lausanne, Switzerland", POIName: "lausanne"},
			{DistanceName: "Lucerne, Switzerland", POIName: "luzern"},
			{DistanceName: "Lugano, Switzerland", POIName: "lugano"},
			{DistanceName: "Montreux, Switzerland", POIName: "montreux"},
			{DistanceName: "Schwyz, Switzerland", POIName: "schwyz"},
			{DistanceName: "Sion, Switzerland", POIName: "sion"},
			{DistanceName: "St. Gallen, Switzerland", POIName: "st_gallen"},
			{DistanceName: "St. Moritz, Switzerland", POIName: "st_moritz"},
			{DistanceName: "Zermatt, Switzerland", POIName: "zermatt"},
			{DistanceName: "Zurich, Switzerland", POIName: "zurich"},
		},
		ExtraAliases: map[string]string{
			"lucerne":                "Lucerne, Switzerland",
			"luzern":                 "Lucerne, Switzerland",
			"st gallen":              "St. Gallen, Switzerland",
			"st-gallen":              "St. Gallen, Switzerland",
			"st. gallen":             "St. Gallen, Switzerland",
			"st gallen, switzerland": "St. Gallen, Switzerland",
			"st moritz":              "St. Moritz, Switzerland",
			"st-moritz":              "St. Moritz, Switzerland",
			"st. moritz":             "St. Moritz, Switzerland",
			"st moritz, switzerland": "St. Moritz, Switzerland",
			"zuerich":                "Zurich, Switzerland",
			"zürich":                 "Zurich, Switzerland",
		},
		SimilarityStopwords: []string{
			"the", "of", "and", "on", "in", "at",
			"lake", "mountain", "mount", "top",
			"adventure", "tour", "experience", "view", "platform",
			"glacier", "swiss", "switzerland",
		},
		LandmarkTokens: []string{"jungfraujoch", "lucerne", "geneva", "zermatt"},
	}
}
