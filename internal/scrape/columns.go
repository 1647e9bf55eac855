package scrape

import "github.com/PuerkitoBio/goquery"

// Field is a canonical column name of the injuries table.
type Field string

const (
	FieldPlayer         Field = "player"
	FieldClub           Field = "club"
	FieldInjury         Field = "injury"
	FieldSince          Field = "since"
	FieldUntil          Field = "until"
	FieldExpectedReturn Field = "expectedreturn"
	FieldDaysAbsent     Field = "daysabsent"
	FieldGamesMissed    Field = "gamesmissed"
	FieldNotes          Field = "notes"
	FieldPosition       Field = "position"
)

// headerAliases maps each semantic field to the normalized header strings
// that denote it across locales. Matching happens on Normalize output, so
// entries here are already folded.
var headerAliases = map[Field][]string{
	FieldPlayer:         {"player", "spieler"},
	FieldClub:           {"club", "verein", "team", "mannschaft"},
	FieldInjury:         {"injury", "verletzung"},
	FieldSince:          {"since", "seit", "from", "injury since", "date of injury", "out since"},
	FieldUntil:          {"until", "bis", "to", "return date", "back on", "out until"},
	FieldExpectedReturn: {"expected return", "erwartete ruckkehr", "voraussichtliche ruckkehr", "expected back"},
	FieldDaysAbsent:     {"days", "tage", "fehltage"},
	FieldGamesMissed:    {"games missed", "spiele verpasst", "spiele"},
	FieldNotes:          {"note", "notes", "bemerkung", "anmerkung"},
	FieldPosition:       {"position", "pos"},
}

// aliasIndex is the reverse lookup: normalized header string -> field.
var aliasIndex = func() map[string]Field {
	idx := make(map[string]Field)
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			idx[alias] = field
		}
	}
	return idx
}()

// ColumnMap maps semantic fields to 1-based column positions within one
// table. A missing key means the field is not present as a distinct column,
// which is a first-class state, not an error.
type ColumnMap map[Field]int

// Has reports whether the field was found as a distinct column.
func (cm ColumnMap) Has(field Field) bool {
	_, ok := cm[field]
	return ok
}

// BuildColumnMap reads the table's header row and resolves each header cell
// against the alias table. Unmatched headers are ignored. When two headers
// resolve to the same field the later one wins; that mirrors the upstream
// behavior and is not a correctness guarantee. Never fails: a table without
// a header row yields an empty map.
func BuildColumnMap(table *goquery.Selection) ColumnMap {
	cols := ColumnMap{}
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		if field, ok := aliasIndex[Normalize(nodeText(th))]; ok {
			cols[field] = i + 1
		}
	})
	return cols
}
