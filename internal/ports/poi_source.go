package ports

import "context"

// POIRecord is one point of interest as the ingestion pipeline produced
// it, before structural validation. Labels are keyed by category name;
// Metadata collects every unrecognized field.
type POIRecord struct {
	Identifier   string
	Name         string
	City         string
	Abstract     string
	Description  string
	Photo        string
	NeededTime   string
	Seasons      []string
	SeasonReason string
	Labels       map[string]bool
	Metadata     map[string]any
}

// Port: a boundary for retrieving POI records from a data source.
type POISource interface {
	// Retrieve all POI records of the loaded dataset.
	ListPOIRecords(ctx context.Context) ([]POIRecord, error)
}
