package scrape

import "testing"

const sparseHeaderTable = `<html><body><table class="items">
	<thead><tr><th>#</th><th>Spieler</th><th>Werbung</th><th>Verletzung</th></tr></thead>
	<tbody></tbody>
</table></body></html>`

func TestBuildColumnMapLocales(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"english headers", englishPage},
		{"german headers", germanPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := BuildColumnMap(mustTable(t, tt.page))

			expected := ColumnMap{
				FieldPlayer: 1,
				FieldClub:   2,
				FieldInjury: 3,
				FieldSince:  4,
				FieldUntil:  5,
			}
			for field, idx := range expected {
				if cols[field] != idx {
					t.Errorf("cols[%s] = %d, expected %d", field, cols[field], idx)
				}
			}
		})
	}
}

func TestBuildColumnMapIdempotent(t *testing.T) {
	table := mustTable(t, englishPage)

	first := BuildColumnMap(table)
	second := BuildColumnMap(table)

	if len(first) != len(second) {
		t.Fatalf("map sizes differ: %d vs %d", len(first), len(second))
	}
	for field, idx := range first {
		if second[field] != idx {
			t.Errorf("second[%s] = %d, expected %d", field, second[field], idx)
		}
	}
}

func TestBuildColumnMapIgnoresUnknownHeaders(t *testing.T) {
	cols := BuildColumnMap(mustTable(t, sparseHeaderTable))

	if len(cols) != 2 {
		t.Fatalf("expected 2 mapped fields, got %d (%v)", len(cols), cols)
	}
	if cols[FieldPlayer] != 2 {
		t.Errorf("cols[player] = %d, expected 2", cols[FieldPlayer])
	}
	if cols[FieldInjury] != 4 {
		t.Errorf("cols[injury] = %d, expected 4", cols[FieldInjury])
	}
}

func TestBuildColumnMapDuplicateHeadersLastWins(t *testing.T) {
	const page = `<html><body><table class="items">
		<thead><tr><th>Player</th><th>Spieler</th><th>Injury</th></tr></thead>
		<tbody></tbody>
	</table></body></html>`

	cols := BuildColumnMap(mustTable(t, page))
	if cols[FieldPlayer] != 2 {
		t.Errorf("cols[player] = %d, expected 2 (later duplicate wins)", cols[FieldPlayer])
	}
}

func TestBuildColumnMapNoHeaderRow(t *testing.T) {
	const page = `<html><body>
		<table class="items"><thead><tr><th>Player</th></tr></thead></table>
		<table><tbody><tr><td>no header here</td></tr></tbody></table>
	</body></html>`

	doc := mustDoc(t, page)
	headerless := doc.Find("table").Eq(1)

	cols := BuildColumnMap(headerless)
	if len(cols) != 0 {
		t.Errorf("expected empty map for headerless table, got %v", cols)
	}
}
