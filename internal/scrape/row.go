package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ligastats/sidelined/internal/urlutil"
)

// ParseRow extracts one InjuryRecord from a table row. Every step has a
// row-local fallback for when the column map is incomplete or a cell is
// malformed; a row only yields a record if both player name and injury
// description survive. A nil return is a normal silent outcome, not a
// failure signal.
func ParseRow(row *goquery.Selection, cols ColumnMap) *InjuryRecord {
	cells := row.ChildrenFiltered("td")
	if cells.Length() == 0 {
		return nil
	}

	cellText := func(field Field) string {
		idx, ok := cols[field]
		if !ok || idx > cells.Length() {
			return ""
		}
		return nodeText(cells.Eq(idx - 1))
	}
	cellLink := func(field Field) string {
		idx, ok := cols[field]
		if !ok || idx > cells.Length() {
			return ""
		}
		href, _ := cells.Eq(idx - 1).Find("a").First().Attr("href")
		return urlutil.Trim(href)
	}

	// Player: prefer the mapped column, else the first profile-looking
	// anchor anywhere in the row.
	playerName := cellText(FieldPlayer)
	playerURL := cellLink(FieldPlayer)
	if playerName == "" || playerURL == "" {
		if anchor := findPlayerAnchor(row); anchor != nil {
			if href, ok := anchor.Attr("href"); ok {
				playerURL = urlutil.Trim(href)
			}
			playerName = nodeText(anchor)
		}
	}

	// Club is optional and only attempted when mapped.
	var clubName, clubURL string
	if idx, ok := cols[FieldClub]; ok && idx <= cells.Length() {
		cell := cells.Eq(idx - 1)
		clubName = cellText(FieldClub)
		clubURL = cellLink(FieldClub)
		if clubName == "" {
			clubName = clubNameFromMarkup(cell)
			if clubURL == "" {
				if href, ok := cell.Find("a").First().Attr("href"); ok {
					clubURL = urlutil.Trim(href)
				}
			}
		}
	}

	injury := cellText(FieldInjury)
	since := NormalizeDate(cellText(FieldSince))
	until := NormalizeDate(cellText(FieldUntil))

	if since == nil || until == nil {
		fallbackSince, fallbackUntil := datesFromSiblings(row)
		if since == nil {
			since = fallbackSince
		}
		if until == nil {
			until = fallbackUntil
		}
	}

	if playerName == "" || injury == "" {
		return nil
	}

	record := &InjuryRecord{
		Player: PlayerRef{
			ID:   urlutil.ExtractID(playerURL),
			Name: playerName,
			URL:  optional(playerURL),
		},
		Injury: injury,
		Since:  since,
		Until:  until,
	}
	if clubName != "" || clubURL != "" {
		record.Player.Club = &ClubRef{
			ID:   urlutil.ExtractID(clubURL),
			Name: optional(clubName),
		}
	}
	return record
}

// findPlayerAnchor returns the first anchor in the row that looks like a
// player profile link, or nil.
func findPlayerAnchor(row *goquery.Selection) *goquery.Selection {
	var match *goquery.Selection
	row.Find("a").EachWithBreak(func(i int, a *goquery.Selection) bool {
		class, _ := a.Attr("class")
		href, _ := a.Attr("href")
		if strings.Contains(class, "spielprofil") || strings.Contains(href, "profil/spieler") {
			match = a
			return false
		}
		return true
	})
	return match
}

// clubNameFromMarkup recovers the club display name from an anchor title or
// crest image alt when the cell carries no text of its own.
func clubNameFromMarkup(cell *goquery.Selection) string {
	var name string
	cell.Find("a[title], img[alt]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if title, ok := s.Attr("title"); ok && urlutil.Trim(title) != "" {
			name = urlutil.Trim(title)
			return false
		}
		if alt, ok := s.Attr("alt"); ok && urlutil.Trim(alt) != "" {
			name = urlutil.Trim(alt)
			return false
		}
		return true
	})
	return name
}

// datesFromSiblings is the structural fallback for the since/until columns:
// the two cells following the "links" cell hold the dates on the stock
// layout. Fewer than two siblings is a normal terminating condition; the
// missing dates stay nil.
func datesFromSiblings(row *goquery.Selection) (since, until *string) {
	linksCell := row.Find("td").FilterFunction(func(i int, td *goquery.Selection) bool {
		class, _ := td.Attr("class")
		return strings.Contains(class, "links")
	}).First()
	if linksCell.Length() == 0 {
		return nil, nil
	}

	siblings := linksCell.NextAllFiltered("td")
	if siblings.Length() >= 1 {
		since = NormalizeDate(nodeText(siblings.Eq(0)))
	}
	if siblings.Length() >= 2 {
		until = NormalizeDate(nodeText(siblings.Eq(1)))
	}
	return since, until
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
