package domain

import "math"

// StatusOK marks a distance record with a known road route.
const StatusOK = "OK"

// DistanceRecord holds driving distance details for an ordered city pair.
// Records with a non-OK status have no known route and are treated as an
// absent edge (infinite weight) by the graph.
type DistanceRecord struct {
	DistanceKM      float64
	DurationMinutes float64
	Status          string
}

// Usable reports whether the record describes a traversable edge.
func (r DistanceRecord) Usable() bool {
	return r.Status == StatusOK &&
		!math.IsInf(r.DistanceKM, 1) && !math.IsInf(r.DurationMinutes, 1)
}

// TravelTimeUnits converts a travel leg into scheduling TUs: each started
// hour costs one unit, with a one-unit minimum whenever travel occurred.
func TravelTimeUnits(minutes float64) int {
	if minutes <= 0 {
		return 0
	}
	tu := int(math.Ceil(minutes / 60.0))
	if tu < 1 {
		return 1
	}
	return tu
}
