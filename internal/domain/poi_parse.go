package domain

import "strings"

// ParseDurationBucket maps the labeling pipeline's free-text "needed time"
// value onto a bucket. The raw values are loosely formatted ("1-2 hours",
// "Less than 1 hour", ...), so matching is by the digits they contain.
func ParseDurationBucket(raw string) DurationBucket {
	needed := strings.ToLower(strings.TrimSpace(raw))
	if needed == "" {
		return BucketUnknown
	}
	switch {
	case strings.Contains(needed, "4") && strings.Contains(needed, "8"):
		return BucketFourToEightHours
	case strings.Contains(needed, "2") && strings.Contains(needed, "4"):
		return BucketTwoToFourHours
	case strings.Contains(needed, "1") && strings.Contains(needed, "2"):
		return BucketOneToTwoHours
	case strings.Contains(needed, "less") || strings.Contains(needed, "<"):
		return BucketUnderOneHour
	default:
		return BucketUnknown
	}
}
