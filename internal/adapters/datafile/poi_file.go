// Package datafile adapts the ingestion pipeline's JSON output files to
// the planner's source ports.
package datafile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// POIFile reads POI records from the labeled-POI JSON dataset.
type POIFile struct {
	Path  string
	Vocab domain.Vocabulary
}

func (f *POIFile) ListPOIRecords(ctx context.Context) ([]ports.POIRecord, error) {
	return LoadPOIRecords(f.Path, f.Vocab)
}

// LoadPOIRecords parses the labeled-POI dataset. Entries are loosely
// typed: category labels are top-level booleans keyed by the active
// vocabulary, the visit-duration bucket hides inside a "classification"
// list, and the season field may be a string or a list. Every field the
// core does not recognize is preserved in the record's metadata map.
func LoadPOIRecords(path string, vocab domain.Vocabulary) ([]ports.POIRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load poi records: read %q: %w", path, err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("load poi records: parse %q: %w", path, err)
	}

	known := map[string]struct{}{
		"identifier": {}, "name": {}, "city": {}, "abstract": {},
		"description": {}, "photo": {}, "season": {}, "season_reason": {},
	}
	for _, category := range vocab {
		known[category] = struct{}{}
		known[category+"_reason"] = struct{}{}
	}

	records := make([]ports.POIRecord, 0, len(entries))
	for _, entry := range entries {
		labels := make(map[string]bool, len(vocab))
		for _, category := range vocab {
			b, _ := entry[category].(bool)
			labels[category] = b
		}

		metadata := map[string]any{}
		for key, value := range entry {
			if _, ok := known[key]; !ok {
				metadata[key] = value
			}
		}

		records = append(records, ports.POIRecord{
			Identifier:   asString(entry["identifier"]),
			Name:         asString(entry["name"]),
			City:         asString(entry["city"]),
			Abstract:     asString(entry["abstract"]),
			Description:  asString(entry["description"]),
			Photo:        asString(entry["photo"]),
			NeededTime:   neededTime(entry["classification"]),
			Seasons:      parseSeasons(entry["season"]),
			SeasonReason: asString(entry["season_reason"]),
			Labels:       labels,
			Metadata:     metadata,
		})
	}
	return records, nil
}

// neededTime digs the "neededtime" classification value out of the
// entry's classification list.
func neededTime(raw any) string {
	list, ok := raw.([]any)
	if !ok {
		return ""
	}
	for _, item := range list {
		classification, ok := item.(map[string]any)
		if !ok || asString(classification["name"]) != "neededtime" {
			continue
		}
		values, ok := classification["values"].([]any)
		if !ok || len(values) == 0 {
			return ""
		}
		first, ok := values[0].(map[string]any)
		if !ok {
			return ""
		}
		if title := asString(first["title"]); title != "" {
			return title
		}
		return asString(first["name"])
	}
	return ""
}

// parseSeasons accepts a single season string or a list, keeping only
// recognized values in declared order.
func parseSeasons(raw any) []string {
	switch v := raw.(type) {
	case string:
		candidate := strings.ToLower(strings.TrimSpace(v))
		if domain.KnownSeason(candidate) {
			return []string{candidate}
		}
		return nil
	case []any:
		var out []string
		for _, item := range v {
			candidate := strings.ToLower(strings.TrimSpace(asString(item)))
			if !domain.KnownSeason(candidate) {
				continue
			}
			dup := false
			for _, existing := range out {
				if existing == candidate {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, candidate)
			}
		}
		return out
	default:
		return nil
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
