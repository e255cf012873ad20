package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldASCII strips diacritics and any remaining non-ASCII runes, so user
// input like "Zürich" compares equal to the dataset's "Zurich" keys.
// A fresh transformer chain is built per call; chained transformers carry
// state and are not safe to share across goroutines.
func foldASCII(value string) string {
	chain := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(chain, value)
	if err != nil {
		return value
	}
	return out
}

// normalizeCityKey canonicalizes a city name for alias lookups.
func normalizeCityKey(value string) string {
	return strings.ToLower(strings.TrimSpace(foldASCII(value)))
}
