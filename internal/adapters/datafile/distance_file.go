package datafile

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// DistanceFile reads the inter-city distance matrix from the routing
// pipeline's JSON output.
type DistanceFile struct {
	Path string
}

func (f *DistanceFile) DistanceMatrix(ctx context.Context) (ports.DistanceMatrix, error) {
	return LoadDistanceMatrix(f.Path)
}

type distancePayload struct {
	DistanceKM      *float64 `json:"distance_km"`
	DurationMinutes *float64 `json:"duration_minutes"`
	Status          string   `json:"status"`
}

type distanceDocument struct {
	Distances map[string]map[string]distancePayload `json:"distances"`
}

// LoadDistanceMatrix parses the distance dataset. Null weights become
// +Inf so the graph drops the edge; a missing status is recorded as
// UNKNOWN rather than silently passing as routable.
func LoadDistanceMatrix(path string) (ports.DistanceMatrix, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load distance matrix: read %q: %w", path, err)
	}

	var doc distanceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("load distance matrix: parse %q: %w", path, err)
	}

	matrix := make(ports.DistanceMatrix, len(doc.Distances))
	for origin, destinations := range doc.Distances {
		row := make(map[string]domain.DistanceRecord, len(destinations))
		for dest, payload := range destinations {
			status := payload.Status
			if status == "" {
				status = "UNKNOWN"
			}
			row[dest] = domain.DistanceRecord{
				DistanceKM:      floatOrInf(payload.DistanceKM),
				DurationMinutes: floatOrInf(payload.DurationMinutes),
				Status:          status,
			}
		}
		matrix[origin] = row
	}
	return matrix, nil
}

func floatOrInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
