package services

import (
	"math"
	"sort"
	"strings"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/routegraph"
)

const (
	// DailyTravelLimitMinutes caps a single day's travel leg.
	DailyTravelLimitMinutes = 240.0
	// LongTravelThresholdMinutes marks an incoming leg long enough to
	// favor staying the next day.
	LongTravelThresholdMinutes = 180.0
)

// CityMapping wires the two naming worlds together: the distance dataset's
// city names and the POI dataset's city names, plus hand-maintained alias
// spellings users are likely to type.
type CityMapping struct {
	// CountrySuffix is stripped from distance names to form display names
	// and extra aliases (e.g. ", Switzerland").
	CountrySuffix string
	// DistanceToPOI maps each distance-graph city to its POI-pool city.
	DistanceToPOI map[string]string
	// ExtraAliases maps additional spellings to distance-graph cities.
	ExtraAliases map[string]string
}

// Planner walks day by day from a start city to an end city, deciding
// stay-vs-move and consuming per-city POI pools. It is safe for concurrent
// use: each run works on its own pool snapshot.
type Planner struct {
	catalog  *catalog.Catalog
	graph    *routegraph.Graph
	selector *Selector
	mapping  CityMapping

	poiToDistance   map[string]string
	aliasToDistance map[string]string
}

func NewPlanner(cat *catalog.Catalog, graph *routegraph.Graph, selector *Selector, mapping CityMapping) *Planner {
	p := &Planner{
		catalog:       cat,
		graph:         graph,
		selector:      selector,
		mapping:       mapping,
		poiToDistance: make(map[string]string, len(mapping.DistanceToPOI)),
	}
	for distanceName, poiName := range mapping.DistanceToPOI {
		p.poiToDistance[poiName] = distanceName
	}
	p.aliasToDistance = p.buildAliases()
	return p
}

// AvailableCities returns the display names of every plannable city, sorted.
func (p *Planner) AvailableCities() []string {
	seen := map[string]struct{}{}
	var out []string
	for distanceName := range p.mapping.DistanceToPOI {
		display := p.displayName(distanceName)
		if _, ok := seen[display]; !ok {
			seen[display] = struct{}{}
			out = append(out, display)
		}
	}
	sort.Strings(out)
	return out
}

// IsKnownCity reports whether the name resolves to a plannable city.
func (p *Planner) IsKnownCity(name string) bool {
	_, err := p.resolveCity(name)
	return err == nil
}

// DisplayFor resolves a city name to its display form.
func (p *Planner) DisplayFor(name string) (string, error) {
	resolved, err := p.resolveCity(name)
	if err != nil {
		return "", err
	}
	return resolved.display, nil
}

// PlanRoute produces a full day-indexed itinerary from startCity to
// endCity over numDays days. All probabilistic tie-breaks go through rng,
// so a fixed seed reproduces the itinerary exactly. On any infeasibility
// the itinerary is discarded and a single descriptive failure returned;
// retrying with different inputs is the caller's decision.
func (p *Planner) PlanRoute(startCity, endCity string, numDays int, weights map[string]float64, season string, rng Rand) ([]domain.DayPlan, error) {
	if numDays <= 0 {
		return nil, domain.Validationf("number of travel days must be positive")
	}
	if rng == nil {
		return nil, domain.Validationf("a random source is required")
	}
	if err := p.selector.ValidateWeights(weights); err != nil {
		return nil, err
	}
	if season != "" && !domain.KnownSeason(season) {
		return nil, domain.Validationf("unsupported season %q", season)
	}

	start, err := p.resolveCity(startCity)
	if err != nil {
		return nil, err
	}
	end, err := p.resolveCity(endCity)
	if err != nil {
		return nil, err
	}
	loopTrip := start.distance == end.distance

	if math.IsInf(p.graph.Shortest(start.distance, end.distance, routegraph.Distance), 1) {
		return nil, domain.NoPathError(start.display, end.display)
	}
	if !loopTrip && numDays < 2 {
		return nil, domain.Validationf("at least two days are required to travel between different cities")
	}

	// Minimum single-day hops to the end city, per city, under the daily
	// travel cap.
	minDaysToEnd := make(map[string]float64, len(p.graph.Cities()))
	for _, city := range p.graph.Cities() {
		minutes := p.graph.Shortest(city, end.distance, routegraph.Duration)
		if math.IsInf(minutes, 1) {
			minDaysToEnd[city] = math.Inf(1)
		} else {
			minDaysToEnd[city] = math.Ceil(minutes / DailyTravelLimitMinutes)
		}
	}

	requiredEndStay := requiredEndStayDays(numDays, loopTrip)
	if minDaysToEnd[start.distance] > float64(max(0, numDays-requiredEndStay)) {
		return nil, domain.Infeasiblef("not enough days to reach %s under the daily travel limit", end.display)
	}

	distanceToEnd := make(map[string]float64, len(p.graph.Cities()))
	for _, city := range p.graph.Cities() {
		distanceToEnd[city] = p.graph.Shortest(city, end.distance, routegraph.Distance)
	}

	// Per-run pool snapshot: the planner consumes POIs as days are filled,
	// while the catalog stays untouched.
	available := make(map[string][]*domain.POI, len(p.mapping.DistanceToPOI))
	for _, poiCity := range p.mapping.DistanceToPOI {
		available[poiCity] = p.catalog.POIsForCity(poiCity, season)
	}

	targetStayDays := 1
	if numDays > 10 {
		targetStayDays = min(2, max(1, int(math.Ceil(float64(numDays)/10))))
	}

	visitCounts := map[string]int{}
	extraStayUsed := map[string]bool{}
	visited := map[string]struct{}{}

	current := start
	var previousDistance string
	var travelFromDistance string
	travelMinutesPrev := 0.0

	var dayPlans []domain.DayPlan

	for day := 1; day <= numDays; day++ {
		visitCounts[current.distance]++
		visited[current.distance] = struct{}{}
		remainingDays := numDays - day

		travelTU := domain.TravelTimeUnits(travelMinutesPrev)
		pois, err := p.selector.SelectForDay(available[current.poi], weights, travelTU, season, rng)
		if err != nil {
			return nil, err
		}
		available[current.poi] = removePOIs(available[current.poi], pois)

		activityTU := 0
		containsSport := false
		for _, poi := range pois {
			activityTU += poi.NeededTime.TimeUnits()
			if poi.HasLabel("sport") {
				containsSport = true
			}
		}
		totalTU := travelTU + activityTU

		dayPlan := domain.DayPlan{
			Day:           day,
			DistanceCity:  current.distance,
			POICity:       current.poi,
			DisplayCity:   current.display,
			TravelFrom:    p.displayName(travelFromDistance),
			TravelMinutes: travelMinutesPrev,
			POIs:          pois,
		}

		if day == numDays {
			if current.distance != end.distance {
				return nil, domain.InfeasibleAt(current.display, day, "itinerary did not reach the destination on the final day")
			}
			dayPlan.Note = "final day at destination"
			dayPlans = append(dayPlans, dayPlan)
			break
		}

		shouldStay, stayReasons := p.decideStay(stayDecision{
			current:         current,
			end:             end,
			loopTrip:        loopTrip,
			numDays:         numDays,
			remainingDays:   remainingDays,
			requiredEndStay: requiredEndStay,
			targetStayDays:  targetStayDays,
			containsSport:   containsSport,
			travelFrom:      travelFromDistance,
			travelMinutes:   travelMinutesPrev,
			visitCounts:     visitCounts,
			extraStayUsed:   extraStayUsed,
			minDaysToEnd:    minDaysToEnd,
		})

		// A stay only makes sense while the city still offers eligible
		// candidates for the active preferences and season.
		if shouldStay && !p.hasCandidates(available[current.poi], weights, season) {
			shouldStay = false
			stayReasons = nil
		}

		// Low-utilization override: a day under the preferred band moves
		// on instead of staying.
		lowTUForceMove := totalTU < preferredBandLow && remainingDays > 0
		if shouldStay && lowTUForceMove {
			shouldStay = false
			stayReasons = nil
		}

		if shouldStay {
			dayPlan.Note = strings.Join(stayReasons, "; ")
			dayPlans = append(dayPlans, dayPlan)
			for _, reason := range stayReasons {
				if reason == "sport-focused day" || reason == "long travel day" {
					extraStayUsed[current.distance] = true
				}
			}
			travelFromDistance = current.distance
			travelMinutesPrev = 0
			continue
		}

		nextCity, travelMinutes, ok := p.chooseNextCity(nextCityQuery{
			current:         current.distance,
			previous:        previousDistance,
			day:             day,
			numDays:         numDays,
			end:             end.distance,
			remainingDays:   remainingDays,
			requiredEndStay: requiredEndStay,
			visitCounts:     visitCounts,
			minDaysToEnd:    minDaysToEnd,
			distanceToEnd:   distanceToEnd,
			visited:         visited,
			available:       available,
			weights:         weights,
			season:          season,
		}, rng)
		if !ok {
			return nil, domain.InfeasibleAt(current.display, day, "no feasible next city under the constraints")
		}

		if lowTUForceMove {
			// Rebuild the day as a move into the next city: the travel leg
			// is consumed now and activities are selected at the arrival
			// city with whatever budget remains.
			next := p.resolved(nextCity)

			if visitCounts[current.distance] > 0 {
				visitCounts[current.distance]--
			}
			visitCounts[next.distance]++

			travelTUNow := domain.TravelTimeUnits(travelMinutes)
			destPOIs, err := p.selector.SelectForDay(available[next.poi], weights, travelTUNow, season, rng)
			if err != nil {
				return nil, err
			}
			available[next.poi] = removePOIs(available[next.poi], destPOIs)

			dayPlan.DistanceCity = next.distance
			dayPlan.POICity = next.poi
			dayPlan.DisplayCity = next.display
			dayPlan.TravelFrom = current.display
			dayPlan.TravelMinutes = travelMinutes
			dayPlan.POIs = destPOIs
			dayPlan.Note = "moved due to low TU"

			// The rewrite changed the day's travel and activities, so the
			// ceiling has to be re-checked rather than assumed to hold.
			if dayPlan.TimeUnits() > MaxDailyTimeUnits {
				return nil, domain.InfeasibleAt(next.display, day, "rewritten day exceeds the daily time-unit ceiling")
			}

			dayPlans = append(dayPlans, dayPlan)

			previousDistance = next.distance
			travelFromDistance = next.distance
			travelMinutesPrev = 0
			current = next
		} else {
			// Travel happens after today's activities; the leg lands on
			// tomorrow's record.
			dayPlans = append(dayPlans, dayPlan)

			previousDistance = current.distance
			travelFromDistance = current.distance
			travelMinutesPrev = travelMinutes
			current = p.resolved(nextCity)
		}
	}

	return dayPlans, nil
}

// Evaluate scores a completed itinerary using the planner's own graph,
// vocabulary, and naming. The cities accept the same spellings PlanRoute
// does; mtu is the per-day time-unit ceiling to validate against.
func (p *Planner) Evaluate(dayPlans []domain.DayPlan, startCity, endCity string, interests map[string]float64, mtu int, season string) (domain.ScoreBreakdown, error) {
	start, err := p.resolveCity(startCity)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	end, err := p.resolveCity(endCity)
	if err != nil {
		return domain.ScoreBreakdown{}, err
	}
	ev := NewEvaluator(p.graph, p.catalog.Vocabulary(), p.mapping.CountrySuffix)
	return ev.Evaluate(dayPlans, start.distance, end.distance, interests, mtu, season), nil
}

// requiredEndStayDays is the dwell requirement at the end city: loop trips
// need only the final day there, long trips progressively more.
func requiredEndStayDays(numDays int, loopTrip bool) int {
	switch {
	case loopTrip:
		return 1
	case numDays >= 15:
		return 3
	case numDays >= 7:
		return 2
	default:
		return 1
	}
}

type stayDecision struct {
	current         resolvedCity
	end             resolvedCity
	loopTrip        bool
	numDays         int
	remainingDays   int
	requiredEndStay int
	targetStayDays  int
	containsSport   bool
	travelFrom      string
	travelMinutes   float64
	visitCounts     map[string]int
	extraStayUsed   map[string]bool
	minDaysToEnd    map[string]float64
}

// decideStay evaluates the stay triggers for the current day. The returned
// reasons annotate the day plan when the stay goes through.
func (p *Planner) decideStay(q stayDecision) (bool, []string) {
	if q.current.distance == q.end.distance {
		// Loop trips roam freely until the closing days; otherwise, once
		// at the end city, stay until the dwell requirement is met.
		if q.loopTrip {
			return false, nil
		}
		return q.visitCounts[q.current.distance] < q.requiredEndStay, nil
	}

	if q.remainingDays <= 1 {
		return false, nil
	}

	var reasons []string
	eventStay := false
	if !q.extraStayUsed[q.current.distance] {
		if q.containsSport {
			reasons = append(reasons, "sport-focused day")
			eventStay = true
		}
		if q.travelFrom != "" && q.travelMinutes >= LongTravelThresholdMinutes {
			reasons = append(reasons, "long travel day")
			eventStay = true
		}
	}

	targetStay := q.numDays > 10 && q.visitCounts[q.current.distance] < q.targetStayDays
	if !eventStay {
		reasons = nil
		if targetStay {
			reasons = append(reasons, "target stay")
		}
	}

	if len(reasons) == 0 {
		return false, nil
	}

	// Staying must still leave enough days to reach the end city with its
	// dwell requirement intact.
	budget := float64(max(0, (q.remainingDays-1)-(q.requiredEndStay-1)))
	if q.minDaysToEnd[q.current.distance] > budget {
		return false, nil
	}
	return true, reasons
}

// hasCandidates is HasPreferredPOIs with the weight vector already
// validated upfront by PlanRoute.
func (p *Planner) hasCandidates(pool []*domain.POI, weights map[string]float64, season string) bool {
	ok, err := p.selector.HasPreferredPOIs(pool, weights, season)
	return err == nil && ok
}

func removePOIs(pool []*domain.POI, chosen []*domain.POI) []*domain.POI {
	if len(chosen) == 0 {
		return pool
	}
	drop := make(map[string]struct{}, len(chosen))
	for _, poi := range chosen {
		drop[poi.Identifier] = struct{}{}
	}
	out := pool[:0:0]
	for _, poi := range pool {
		if _, ok := drop[poi.Identifier]; !ok {
			out = append(out, poi)
		}
	}
	return out
}
