package services

import (
	"strings"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/routegraph"
)

// LoadCatalog transforms the externally-provided POI and distance datasets
// into the in-memory catalog and distance graph. It is a pure transform:
// structural validation failures (missing identifier, name, or city) abort
// the load, anything else is carried through untouched.
func LoadCatalog(poiRecords []ports.POIRecord, distances ports.DistanceMatrix, vocab domain.Vocabulary) (*catalog.Catalog, *routegraph.Graph, error) {
	poisByCity := make(map[string][]*domain.POI)

	for i, rec := range poiRecords {
		if strings.TrimSpace(rec.Identifier) == "" {
			return nil, nil, domain.Validationf("poi record %d: missing identifier", i)
		}
		if strings.TrimSpace(rec.Name) == "" {
			return nil, nil, domain.Validationf("poi record %q: missing name", rec.Identifier)
		}
		if strings.TrimSpace(rec.City) == "" {
			return nil, nil, domain.Validationf("poi record %q: missing city", rec.Identifier)
		}

		poi := &domain.POI{
			Identifier:   rec.Identifier,
			Name:         rec.Name,
			City:         rec.City,
			Abstract:     rec.Abstract,
			Description:  rec.Description,
			Photo:        rec.Photo,
			NeededTime:   domain.ParseDurationBucket(rec.NeededTime),
			Seasons:      normalizeSeasons(rec.Seasons),
			SeasonReason: rec.SeasonReason,
			Labels:       rec.Labels,
			Metadata:     rec.Metadata,
		}

		key := strings.ToLower(rec.City)
		poisByCity[key] = append(poisByCity[key], poi)
	}

	cat := catalog.New(poisByCity, vocab)
	graph := routegraph.New(distances)
	return cat, graph, nil
}

// normalizeSeasons keeps known seasons in declared order, dropping
// duplicates and unrecognized values.
func normalizeSeasons(raw []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, value := range raw {
		season := strings.ToLower(strings.TrimSpace(value))
		if !domain.KnownSeason(season) {
			continue
		}
		if _, dup := seen[season]; dup {
			continue
		}
		seen[season] = struct{}{}
		out = append(out, season)
	}
	return out
}
