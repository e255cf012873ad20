package domain

// Vocabulary is the ordered category set active for a dataset revision.
// The order matters: a POI's primary category is its first matching entry.
// Different dataset revisions ship different vocabularies, so the set is
// loaded from configuration rather than hard-coded.
type Vocabulary []string

// DefaultVocabulary matches the current dataset revision.
var DefaultVocabulary = Vocabulary{"lake", "mountain", "sport", "culture", "food"}

// Seasons is the full fixed season vocabulary, used as a fallback when the
// loaded dataset carries no season labels at all.
var Seasons = []string{"spring", "summer", "autumn", "winter"}

// Contains reports whether the category is part of the vocabulary.
func (v Vocabulary) Contains(category string) bool {
	for _, c := range v {
		if c == category {
			return true
		}
	}
	return false
}

// KnownSeason reports whether the value is one of the fixed seasons.
func KnownSeason(value string) bool {
	for _, s := range Seasons {
		if s == value {
			return true
		}
	}
	return false
}
