package domain

// DayPlan is one day of a planned itinerary.
//
// A city carries two identities: DistanceCity is its key in the distance
// graph, POICity its key in the POI dataset. The planner maps between the
// two explicitly. TravelFrom and TravelMinutes describe the incoming leg;
// both are zero on travel-free days.
type DayPlan struct {
	Day           int
	DistanceCity  string
	POICity       string
	DisplayCity   string
	TravelFrom    string // display name of the origin, empty when none
	TravelMinutes float64
	POIs          []*POI
	Note          string
}

// TimeUnits returns the day's total scheduling cost: the incoming travel
// leg plus every selected activity.
func (d DayPlan) TimeUnits() int {
	total := TravelTimeUnits(d.TravelMinutes)
	for _, poi := range d.POIs {
		total += poi.NeededTime.TimeUnits()
	}
	return total
}
