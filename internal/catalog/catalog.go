// Package catalog holds the in-memory POI index, grouped by city with
// case-insensitive lookup and season-aware ordering.
package catalog

import (
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
)

// Catalog is the read-only POI index for one loaded dataset revision.
// It owns every POI; callers receive shared references and must not
// mutate them.
type Catalog struct {
	poisByCity map[string][]*domain.POI // keyed by lower-cased city
	seasons    []string
	vocab      domain.Vocabulary
}

// New builds a catalog from POIs already grouped by city. City keys are
// lower-cased for case-insensitive lookup. The available season set is
// collected from the data, falling back to the full fixed vocabulary when
// no POI carries season labels.
func New(poisByCity map[string][]*domain.POI, vocab domain.Vocabulary) *Catalog {
	c := &Catalog{
		poisByCity: make(map[string][]*domain.POI, len(poisByCity)),
		vocab:      vocab,
	}

	present := map[string]struct{}{}
	for city, pois := range poisByCity {
		c.poisByCity[strings.ToLower(city)] = pois
		for _, poi := range pois {
			for _, season := range poi.Seasons {
				present[season] = struct{}{}
			}
		}
	}

	if len(present) == 0 {
		c.seasons = append(c.seasons, domain.Seasons...)
	} else {
		for season := range present {
			c.seasons = append(c.seasons, season)
		}
		sort.Strings(c.seasons)
	}

	return c
}

// Cities returns every city with POIs, sorted.
func (c *Catalog) Cities() []string {
	out := make([]string, 0, len(c.poisByCity))
	for city := range c.poisByCity {
		out = append(out, city)
	}
	sort.Strings(out)
	return out
}

// Seasons returns the seasons represented in the dataset.
func (c *Catalog) Seasons() []string {
	out := make([]string, len(c.seasons))
	copy(out, c.seasons)
	return out
}

// Vocabulary returns the category set active for this dataset.
func (c *Catalog) Vocabulary() domain.Vocabulary {
	return c.vocab
}

// HasLabel reports whether the POI carries the category. The category must
// belong to the active vocabulary to ever match.
func (c *Catalog) HasLabel(poi *domain.POI, category string) bool {
	return c.vocab.Contains(category) && poi.HasLabel(category)
}

// POIsForCity returns the POIs of a city (case-insensitive). With a season,
// POIs listing that season come first, ordered by their suitability rank
// (rank 0 = best fit); the rest follow in dataset order. POIs with an empty
// season list rank after every match but are still returned.
func (c *Catalog) POIsForCity(city, season string) []*domain.POI {
	candidates := c.poisByCity[strings.ToLower(city)]
	if len(candidates) == 0 || season == "" {
		out := make([]*domain.POI, len(candidates))
		copy(out, candidates)
		return out
	}

	type ranked struct {
		priority int
		poi      *domain.POI
	}
	var matched []ranked
	var others []*domain.POI

	for _, poi := range candidates {
		if priority, ok := poi.SeasonPriority(season); ok {
			matched = append(matched, ranked{priority: priority, poi: poi})
		} else {
			others = append(others, poi)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].priority < matched[j].priority
	})

	out := make([]*domain.POI, 0, len(candidates))
	for _, r := range matched {
		out = append(out, r.poi)
	}
	out = append(out, others...)
	return out
}

// NormalizeSeason validates and canonicalizes a user-supplied season value.
func (c *Catalog) NormalizeSeason(value string) (string, error) {
	candidate := strings.ToLower(strings.TrimSpace(value))
	if !domain.KnownSeason(candidate) {
		return "", domain.Validationf("unsupported season %q", value)
	}
	return candidate, nil
}
