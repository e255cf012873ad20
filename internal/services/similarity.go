package services

import (
	"regexp"
	"strings"

	"trip-planner-service/internal/domain"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// NameSimilarity decides whether two POIs describe near-duplicate
// experiences, based on overlap between their name tokens. Two POIs are
// similar when they share at least two tokens, or exactly one token that
// names a well-known landmark (a shared glacier or city-icon name).
//
// The stop-word and landmark lists come from the planner profile since
// they are dataset-specific.
type NameSimilarity struct {
	stopwords map[string]struct{}
	landmarks map[string]struct{}
}

func NewNameSimilarity(stopwords, landmarks []string) NameSimilarity {
	m := NameSimilarity{
		stopwords: make(map[string]struct{}, len(stopwords)),
		landmarks: make(map[string]struct{}, len(landmarks)),
	}
	for _, w := range stopwords {
		m.stopwords[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range landmarks {
		m.landmarks[strings.ToLower(w)] = struct{}{}
	}
	return m
}

// Similar reports whether the two POIs are mutually exclusive within one
// day per the token-overlap rule.
func (m NameSimilarity) Similar(a, b *domain.POI) bool {
	tokensA := m.tokens(a.Name)
	tokensB := m.tokens(b.Name)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return false
	}

	overlap := 0
	single := ""
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			overlap++
			single = token
		}
	}

	if overlap >= 2 {
		return true
	}
	if overlap == 1 {
		_, landmark := m.landmarks[single]
		return landmark
	}
	return false
}

// tokens splits a POI name into lower-cased, accent-stripped alphanumeric
// tokens with stop-words removed.
func (m NameSimilarity) tokens(name string) map[string]struct{} {
	folded := strings.ToLower(foldASCII(name))
	out := map[string]struct{}{}
	for _, token := range tokenPattern.FindAllString(folded, -1) {
		if _, stop := m.stopwords[token]; stop {
			continue
		}
		out[token] = struct{}{}
	}
	return out
}
