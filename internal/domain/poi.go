package domain

// DurationBucket is the estimated visit length of a POI, one of four
// ordered buckets produced by the labeling pipeline.
type DurationBucket int

const (
	BucketUnknown DurationBucket = iota
	BucketUnderOneHour
	BucketOneToTwoHours
	BucketTwoToFourHours
	BucketFourToEightHours
)

// TimeUnits returns the scheduling cost of the bucket in TUs.
// Unlabeled POIs are charged a middle-of-the-road two units.
func (b DurationBucket) TimeUnits() int {
	switch b {
	case BucketUnderOneHour:
		return 1
	case BucketOneToTwoHours:
		return 2
	case BucketTwoToFourHours:
		return 4
	case BucketFourToEightHours:
		return 8
	default:
		return 2
	}
}

func (b DurationBucket) String() string {
	switch b {
	case BucketUnderOneHour:
		return "less than 1 hour"
	case BucketOneToTwoHours:
		return "1-2 hours"
	case BucketTwoToFourHours:
		return "2-4 hours"
	case BucketFourToEightHours:
		return "4-8 hours"
	default:
		return "unknown"
	}
}

// Represents a single point of interest with pipeline-derived labels.
// A POI is constructed once at load time and never mutated afterwards;
// the catalog owns it and the selector and evaluator only hold references.
type POI struct {
	Identifier   string
	Name         string
	City         string
	Abstract     string
	Description  string
	Photo        string
	NeededTime   DurationBucket
	Seasons      []string // suitability order, best fit first; empty = unknown
	SeasonReason string
	Labels       map[string]bool
	Metadata     map[string]any
}

// HasLabel reports whether the POI carries the requested category label.
func (p *POI) HasLabel(category string) bool {
	return p.Labels[category]
}

// SeasonPriority returns the 0-indexed position of the season in the POI's
// suitability order. The second result is false when the season is absent.
func (p *POI) SeasonPriority(season string) (int, bool) {
	for i, s := range p.Seasons {
		if s == season {
			return i, true
		}
	}
	return 0, false
}

// InSeason reports whether the POI is valid for the requested season.
// An empty season means no restriction.
func (p *POI) InSeason(season string) bool {
	if season == "" {
		return true
	}
	_, ok := p.SeasonPriority(season)
	return ok
}

// PrimaryCategory returns the first category in vocabulary order for which
// the POI carries a label. The second result is false when none matches.
func (p *POI) PrimaryCategory(vocab Vocabulary) (string, bool) {
	for _, category := range vocab {
		if p.HasLabel(category) {
			return category, true
		}
	}
	return "", false
}
