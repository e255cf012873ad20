package domain

// ScoreBreakdown is the evaluator's verdict on a completed itinerary.
//
// Total is in [0,100]. Components maps each soft component name to its
// [0,1] sub-score. HardViolations lists every broken hard constraint;
// when it is non-empty, Total is 0 and Components is empty.
type ScoreBreakdown struct {
	Total          float64
	Components     map[string]float64
	HardViolations []string
}

// Valid reports whether the itinerary passed all hard constraints.
func (s ScoreBreakdown) Valid() bool {
	return len(s.HardViolations) == 0
}
