package services

import (
	"math"
	"sort"

	"trip-planner-service/internal/domain"
)

type nextCityQuery struct {
	current         string
	previous        string
	day             int
	numDays         int
	end             string
	remainingDays   int
	requiredEndStay int
	visitCounts     map[string]int
	minDaysToEnd    map[string]float64
	distanceToEnd   map[string]float64
	visited         map[string]struct{}
	available       map[string][]*domain.POI
	weights         map[string]float64
	season          string
}

// moveCandidate is a viable destination with its ordering key.
type moveCandidate struct {
	city     string
	duration float64
	// ordering key, lower is better on every field
	visits        int
	backtrack     int
	distComponent float64
}

// travel-duration buckets: a shorter hop always beats a longer one, so
// candidates are grouped under the lowest threshold they fit.
var durationThresholds = []float64{60, 120, 180, DailyTravelLimitMinutes}

// chooseNextCity picks the city to move into. Direct edges within the
// daily travel cap are bucketed by duration threshold; within the best
// non-empty bucket, candidates are ordered by prior visits, backtrack
// avoidance, distance-to-end (away from the end city early in the trip,
// toward it near the close), then raw duration. Full-key ties are broken
// uniformly at random. Returns false when nothing is viable.
func (p *Planner) chooseNextCity(q nextCityQuery, rng Rand) (string, float64, bool) {
	remainingAfterMove := q.remainingDays - 1

	buckets := make(map[float64][]moveCandidate, len(durationThresholds))
	for _, n := range p.graph.Neighbors(q.current) {
		dest := n.City
		if dest == q.current {
			continue
		}
		duration := n.Weight.Minutes
		if math.IsInf(duration, 1) || duration > DailyTravelLimitMinutes {
			continue
		}

		if _, seen := q.visited[dest]; seen && dest != q.end {
			continue
		}

		destPOICity, mapped := p.mapping.DistanceToPOI[dest]
		if !mapped || !p.hasCandidates(q.available[destPOICity], q.weights, q.season) {
			continue
		}

		if dest == q.end {
			// Move into the end city only on the exact day that makes
			// the dwell requirement land on the final day.
			endArrivalMoveDay := q.numDays - q.requiredEndStay
			if q.day != endArrivalMoveDay {
				continue
			}
			if remainingAfterMove != max(0, q.requiredEndStay-1) {
				continue
			}
		} else {
			// An intermediate hop must leave enough moves to still reach
			// the end city with the dwell intact.
			movesBudget := float64(remainingAfterMove - max(0, q.requiredEndStay-1))
			if minDays, ok := q.minDaysToEnd[dest]; !ok || minDays > movesBudget {
				continue
			}
		}

		distToEnd := math.Inf(1)
		if v, ok := q.distanceToEnd[dest]; ok {
			distToEnd = v
		}
		if dest != q.end && math.IsInf(distToEnd, 1) {
			continue
		}

		// Early in the trip, prefer destinations far from the end city to
		// encourage route coverage; near the close, prefer closing in.
		distComponent := distToEnd
		if remainingAfterMove > 3 {
			distComponent = -distToEnd
		}

		backtrack := 0
		if q.previous != "" && dest == q.previous {
			backtrack = 1
		}

		c := moveCandidate{
			city:          dest,
			duration:      duration,
			visits:        q.visitCounts[dest],
			backtrack:     backtrack,
			distComponent: distComponent,
		}
		for _, threshold := range durationThresholds {
			if duration <= threshold {
				buckets[threshold] = append(buckets[threshold], c)
				break
			}
		}
	}

	for _, threshold := range durationThresholds {
		bucket := buckets[threshold]
		if len(bucket) == 0 {
			continue
		}
		sort.Slice(bucket, func(i, j int) bool {
			if c := compareCandidates(bucket[i], bucket[j]); c != 0 {
				return c < 0
			}
			return bucket[i].city < bucket[j].city
		})

		ties := []moveCandidate{bucket[0]}
		for _, c := range bucket[1:] {
			if compareCandidates(c, bucket[0]) != 0 {
				break
			}
			ties = append(ties, c)
		}

		chosen := ties[rng.IntN(len(ties))]
		return chosen.city, chosen.duration, true
	}

	return "", 0, false
}

// compareCandidates orders by (visits, backtrack, distComponent,
// duration), all ascending. Returns -1, 0, or 1.
func compareCandidates(a, b moveCandidate) int {
	switch {
	case a.visits != b.visits:
		return sign(a.visits - b.visits)
	case a.backtrack != b.backtrack:
		return sign(a.backtrack - b.backtrack)
	case a.distComponent != b.distComponent:
		return signFloat(a.distComponent - b.distComponent)
	case a.duration != b.duration:
		return signFloat(a.duration - b.duration)
	default:
		return 0
	}
}
