package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// DistanceMatrix is the nested origin -> destination -> record structure
// produced by the ingestion pipeline.
type DistanceMatrix map[string]map[string]domain.DistanceRecord

// Port: a boundary for retrieving the inter-city distance matrix.
type DistanceSource interface {
	// Retrieve the full distance matrix of the loaded dataset.
	DistanceMatrix(ctx context.Context) (DistanceMatrix, error)
}
