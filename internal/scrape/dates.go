package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Placeholder tokens the source uses for "no date known".
var unknownDateTokens = map[string]struct{}{
	"-":       {},
	"?":       {},
	"unknown": {},
	"Unknown": {},
}

var (
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dottedDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	slashDate  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	weekdayPfx = regexp.MustCompile(`^[A-Za-z]{3},\s*`)
)

// NormalizeDate parses the heterogeneous date strings the source emits and
// returns a canonical YYYY-MM-DD, or nil for placeholders and anything it
// cannot parse. Unparseable dates are a data-quality signal, not an error.
//
// Accepted inputs: "2025-10-11", "11.10.2025", "01/09/2025", "1/9/25",
// "Oct 11, 2025", "Sat, Oct 11, 2025". Dot and slash forms are day-first.
func NormalizeDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, ok := unknownDateTokens[s]; ok {
		return nil
	}

	if isoDate.MatchString(s) {
		return &s
	}

	if m := dottedDate.FindStringSubmatch(s); m != nil {
		return isoFromParts(m[3], m[2], m[1])
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			// Fixed pivot: 2-digit years up to 69 are 2000s.
			if n, _ := strconv.Atoi(year); n <= 69 {
				year = "20" + year
			} else {
				year = "19" + year
			}
		}
		return isoFromParts(year, m[2], m[1])
	}

	if t, err := time.Parse("Jan 2, 2006", s); err == nil {
		iso := t.Format("2006-01-02")
		return &iso
	}

	// "Sat, Oct 11, 2025": drop the weekday abbreviation and retry.
	if stripped := weekdayPfx.ReplaceAllString(s, ""); stripped != s {
		if t, err := time.Parse("Jan 2, 2006", stripped); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}

	return nil
}

func isoFromParts(year, month, day string) *string {
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	iso := fmt.Sprintf("%s-%02d-%02d", year, mo, d)
	return &iso
}
