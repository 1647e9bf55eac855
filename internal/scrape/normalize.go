package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// foldMarks decomposes characters and drops the combining marks, so
	// "Rückkehr" and "Ruckkehr" compare equal.
	foldMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

	spaceRuns   = regexp.MustCompile(`\s+`)
	nonWordRuns = regexp.MustCompile(`[^a-z0-9_ ]+`)
)

// Normalize turns a header or cell string into a comparison-safe key:
// accents stripped, lowercased, whitespace collapsed, punctuation removed.
// It never fails; empty input yields the empty string. The result is only
// ever used for matching, never surfaced as display text.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldMarks, s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = spaceRuns.ReplaceAllString(s, " ")
	return nonWordRuns.ReplaceAllString(s, "")
}
