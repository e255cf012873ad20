package services

import (
	"trip-planner-service/internal/domain"
)

// MaxDailyTimeUnits is the fixed daily scheduling ceiling: travel and
// activities combined may not exceed this many TUs.
const MaxDailyTimeUnits = 8

// preferredBandLow is the lower edge of the preferred daily TU band;
// totals in [preferredBandLow, MaxDailyTimeUnits] outrank totals outside it.
const preferredBandLow = 6

// Rand is the injected random source used for tie-breaking. *rand.Rand
// from math/rand/v2 satisfies it; planning never touches a process-global
// generator, so runs are reproducible under a fixed seed.
type Rand interface {
	IntN(n int) int
}

// Selector picks a day's POIs from a city pool under the TU ceiling.
//
// Selection is a pure function of its inputs plus the random source; the
// caller removes chosen POIs from the pool afterwards.
type Selector struct {
	vocab domain.Vocabulary
	sim   NameSimilarity
}

func NewSelector(vocab domain.Vocabulary, sim NameSimilarity) *Selector {
	return &Selector{vocab: vocab, sim: sim}
}

// ValidateWeights rejects preference vectors with no positive entry.
func (s *Selector) ValidateWeights(weights map[string]float64) error {
	for _, w := range weights {
		if w > 0 {
			return nil
		}
	}
	return domain.Validationf("preference weights must contain at least one positive entry")
}

// filterByPreferences keeps POIs carrying at least one positive-weight
// category and none of the zero-weight ones. Vocabulary categories absent
// from the weight vector count as zero-weight.
func (s *Selector) filterByPreferences(pool []*domain.POI, weights map[string]float64) ([]*domain.POI, error) {
	if err := s.ValidateWeights(weights); err != nil {
		return nil, err
	}

	positive := map[string]struct{}{}
	for category, w := range weights {
		if w > 0 {
			positive[category] = struct{}{}
		}
	}
	var zero []string
	for _, category := range s.vocab {
		if _, ok := positive[category]; !ok {
			zero = append(zero, category)
		}
	}

	var eligible []*domain.POI
	for _, poi := range pool {
		matches := false
		for category := range positive {
			if poi.HasLabel(category) {
				matches = true
				break
			}
		}
		if !matches {
			continue
		}
		blocked := false
		for _, category := range zero {
			if poi.HasLabel(category) {
				blocked = true
				break
			}
		}
		if !blocked {
			eligible = append(eligible, poi)
		}
	}
	return eligible, nil
}

// HasPreferredPOIs reports whether the pool still offers at least one
// eligible POI for the given preferences (and season, when set).
func (s *Selector) HasPreferredPOIs(pool []*domain.POI, weights map[string]float64, season string) (bool, error) {
	eligible, err := s.filterByPreferences(pool, weights)
	if err != nil {
		return false, err
	}
	if season == "" {
		return len(eligible) > 0, nil
	}
	for _, poi := range eligible {
		if poi.InSeason(season) {
			return true, nil
		}
	}
	return false, nil
}

// candidate is one eligible POI with its precomputed scoring inputs.
type candidate struct {
	poi      *domain.POI
	category string // primary category
	tu       int
}

// combo is one feasible subset of the day's candidates. An empty subset
// (travel only) is always a valid combo.
type combo struct {
	picks     []int // indexes into the candidate list
	totalTU   int   // travel + activities
	prefSum   float64
	seasonSum float64
}

// SelectForDay picks the POIs to visit in one day, given the TUs already
// consumed by travel. All feasible subsets are enumerated (pools are small)
// and ranked by: totals within the preferred band first, then higher total
// TU, then higher summed preference weight of the primary categories, then
// better summed season rank. Full-key ties are broken uniformly at random.
func (s *Selector) SelectForDay(pool []*domain.POI, weights map[string]float64, travelTU int, season string, rng Rand) ([]*domain.POI, error) {
	eligible, err := s.filterByPreferences(pool, weights)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 || travelTU > MaxDailyTimeUnits {
		return nil, nil
	}

	var candidates []candidate
	for _, poi := range eligible {
		category, ok := poi.PrimaryCategory(s.vocab)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{poi: poi, category: category, tu: poi.NeededTime.TimeUnits()})
	}

	// Season narrowing: restrict to in-season POIs when any exist,
	// otherwise fall back to the full eligible set.
	if season != "" {
		var inSeason []candidate
		for _, c := range candidates {
			if c.poi.InSeason(season) {
				inSeason = append(inSeason, c)
			}
		}
		if len(inSeason) > 0 {
			candidates = inSeason
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	combos := s.enumerate(candidates, weights, travelTU, season)

	best := []combo{combos[0]}
	for _, c := range combos[1:] {
		switch compareCombos(c, best[0]) {
		case 1:
			best = []combo{c}
		case 0:
			best = append(best, c)
		}
	}

	chosen := best[rng.IntN(len(best))]
	out := make([]*domain.POI, 0, len(chosen.picks))
	for _, i := range chosen.picks {
		out = append(out, candidates[i].poi)
	}
	return out, nil
}

// enumerate walks every subset of candidates that fits the remaining TU
// budget and contains no two similar POIs. Iterative depth-first with
// early pruning keeps stack depth bounded regardless of pool size.
func (s *Selector) enumerate(candidates []candidate, weights map[string]float64, travelTU int, season string) []combo {
	remaining := MaxDailyTimeUnits - travelTU

	combos := []combo{{totalTU: travelTU}} // travel-only day

	type frame struct {
		next      int
		picks     []int
		usedTU    int
		prefSum   float64
		seasonSum float64
	}

	if remaining <= 0 {
		return combos
	}

	stack := []frame{{next: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := f.next; i < len(candidates); i++ {
			c := candidates[i]
			if c.tu > remaining-f.usedTU {
				continue // would exceed the daily ceiling
			}
			similar := false
			for _, j := range f.picks {
				if s.sim.Similar(c.poi, candidates[j].poi) {
					similar = true
					break
				}
			}
			if similar {
				continue
			}

			picks := make([]int, len(f.picks), len(f.picks)+1)
			copy(picks, f.picks)
			picks = append(picks, i)

			child := frame{
				next:      i + 1,
				picks:     picks,
				usedTU:    f.usedTU + c.tu,
				prefSum:   f.prefSum + weights[c.category],
				seasonSum: f.seasonSum + seasonScore(c.poi, season),
			}
			combos = append(combos, combo{
				picks:     child.picks,
				totalTU:   travelTU + child.usedTU,
				prefSum:   child.prefSum,
				seasonSum: child.seasonSum,
			})
			stack = append(stack, child)
		}
	}
	return combos
}

// compareCombos orders combos by the lexicographic selection key.
// Returns 1 when a outranks b, -1 when b outranks a, 0 on a full-key tie.
func compareCombos(a, b combo) int {
	aBand := boolToInt(a.totalTU >= preferredBandLow && a.totalTU <= MaxDailyTimeUnits)
	bBand := boolToInt(b.totalTU >= preferredBandLow && b.totalTU <= MaxDailyTimeUnits)
	switch {
	case aBand != bBand:
		return sign(aBand - bBand)
	case a.totalTU != b.totalTU:
		return sign(a.totalTU - b.totalTU)
	case a.prefSum != b.prefSum:
		return signFloat(a.prefSum - b.prefSum)
	case a.seasonSum != b.seasonSum:
		return signFloat(b.seasonSum - a.seasonSum) // lower season rank wins
	default:
		return 0
	}
}

// seasonScore is the suitability rank of the POI for the season; POIs not
// listing the season rank behind any listed rank.
func seasonScore(poi *domain.POI, season string) float64 {
	if season == "" {
		return 0
	}
	if priority, ok := poi.SeasonPriority(season); ok {
		return float64(priority)
	}
	return 5
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func signFloat(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
