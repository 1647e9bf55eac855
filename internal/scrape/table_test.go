package scrape

import (
	"errors"
	"testing"
)

func TestLocateInjuriesTable(t *testing.T) {
	t.Run("items class with headers", func(t *testing.T) {
		table, err := LocateInjuriesTable(mustDoc(t, englishPage))
		if err != nil {
			t.Fatalf("LocateInjuriesTable failed: %v", err)
		}
		if class, _ := table.Attr("class"); class != "items" {
			t.Errorf("selected table class = %q, expected %q", class, "items")
		}
	})

	t.Run("responsive class alone qualifies", func(t *testing.T) {
		table, err := LocateInjuriesTable(mustDoc(t, germanPage))
		if err != nil {
			t.Fatalf("LocateInjuriesTable failed: %v", err)
		}
		if class, _ := table.Attr("class"); class != "responsive" {
			t.Errorf("selected table class = %q, expected %q", class, "responsive")
		}
	})

	t.Run("marked table wins over earlier unmarked one", func(t *testing.T) {
		const page = `<html><body>
			<table><thead><tr><th>Rank</th></tr></thead></table>
			<table class="items responsive"><thead><tr><th>Player</th></tr></thead></table>
		</body></html>`

		table, err := LocateInjuriesTable(mustDoc(t, page))
		if err != nil {
			t.Fatalf("LocateInjuriesTable failed: %v", err)
		}
		if class, _ := table.Attr("class"); class != "items responsive" {
			t.Errorf("selected table class = %q, expected the marked table", class)
		}
	})

	t.Run("falls back to any header-bearing table", func(t *testing.T) {
		const page = `<html><body>
			<table class="stats"><thead><tr><th>Spieler</th></tr></thead><tbody></tbody></table>
		</body></html>`

		table, err := LocateInjuriesTable(mustDoc(t, page))
		if err != nil {
			t.Fatalf("LocateInjuriesTable failed: %v", err)
		}
		if table.Find("thead th").Length() == 0 {
			t.Error("selected table has no header cells")
		}
	})

	t.Run("marked table without headers is skipped", func(t *testing.T) {
		const page = `<html><body>
			<table class="items"><tbody><tr><td>headerless</td></tr></tbody></table>
			<table><thead><tr><th>Player</th></tr></thead></table>
		</body></html>`

		table, err := LocateInjuriesTable(mustDoc(t, page))
		if err != nil {
			t.Fatalf("LocateInjuriesTable failed: %v", err)
		}
		if class, _ := table.Attr("class"); class == "items" {
			t.Error("selected the headerless marked table")
		}
	})

	t.Run("no tables", func(t *testing.T) {
		_, err := LocateInjuriesTable(mustDoc(t, `<html><body><p>nothing here</p></body></html>`))
		if !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected ErrTableNotFound, got %v", err)
		}
	})
}

func TestHasHeaderTable(t *testing.T) {
	if !HasHeaderTable(mustDoc(t, englishPage)) {
		t.Error("expected header table in english fixture")
	}
	if HasHeaderTable(mustDoc(t, `<html><body><table><tr><td>x</td></tr></table></body></html>`)) {
		t.Error("table without thead th should not count")
	}
}
