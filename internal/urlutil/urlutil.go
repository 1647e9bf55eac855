// Package urlutil holds the small string and URL helpers the scrape
// pipeline shares with its callers.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var idSegment = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ExtractID pulls the trailing identifier segment out of a profile href:
// "/erling-haaland/profil/spieler/418560" yields "418560". Returns nil when
// the href is empty, unparseable, or its last path segment does not look
// like an identifier.
func ExtractID(href string) *string {
	if strings.TrimSpace(href) == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" || !idSegment.MatchString(last) {
		return nil
	}
	return &last
}

// Trim strips surrounding whitespace and collapses inner runs to single
// spaces, matching how cell text is cleaned before comparison or output.
func Trim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
