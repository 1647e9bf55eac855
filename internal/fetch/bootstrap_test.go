package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/ligastats/sidelined/internal/scrape"
)

const headerTablePage = `<html><body>
	<table class="items"><thead><tr><th>Player</th><th>Injury</th></tr></thead><tbody></tbody></table>
</body></html>`

const tablelessPage = `<html><body><p>maintenance</p></body></html>`

// fakeFetcher serves canned HTML per URL and records the fetch order.
type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.fetched = append(f.fetched, url)
	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected status code: 404")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func TestEnsurePlusVariant(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"appends suffix",
			"https://stats.example.com/premier-league/verletztespieler/wettbewerb/GB1",
			"https://stats.example.com/premier-league/verletztespieler/wettbewerb/GB1/plus/1",
		},
		{
			"strips trailing slash first",
			"https://stats.example.com/liga/verletztespieler/wettbewerb/L1/",
			"https://stats.example.com/liga/verletztespieler/wettbewerb/L1/plus/1",
		},
		{
			"already plus",
			"https://stats.example.com/liga/verletztespieler/wettbewerb/L1/plus/1",
			"https://stats.example.com/liga/verletztespieler/wettbewerb/L1/plus/1",
		},
		{
			"query preserved",
			"https://stats.example.com/liga/wettbewerb/L1?saison_id=2025#rows",
			"https://stats.example.com/liga/wettbewerb/L1/plus/1?saison_id=2025#rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsurePlusVariant(tt.input); got != tt.expected {
				t.Errorf("EnsurePlusVariant(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLeaguePagePrefersPlusVariant(t *testing.T) {
	base := "https://stats.example.com/liga/wettbewerb/L1"
	fetcher := &fakeFetcher{pages: map[string]string{
		base + "/plus/1": headerTablePage,
		base:             headerTablePage,
	}}

	_, servedURL, err := LeaguePage(context.Background(), fetcher, base)
	if err != nil {
		t.Fatalf("LeaguePage failed: %v", err)
	}
	if servedURL != base+"/plus/1" {
		t.Errorf("served URL = %q, expected the plus variant", servedURL)
	}
	if len(fetcher.fetched) != 1 {
		t.Errorf("expected a single fetch, got %v", fetcher.fetched)
	}
}

func TestLeaguePageFallsBackToOriginal(t *testing.T) {
	base := "https://stats.example.com/liga/wettbewerb/L2"
	fetcher := &fakeFetcher{pages: map[string]string{
		base + "/plus/1": tablelessPage, // plus variant exists but has no table
		base:             headerTablePage,
	}}

	doc, servedURL, err := LeaguePage(context.Background(), fetcher, base)
	if err != nil {
		t.Fatalf("LeaguePage failed: %v", err)
	}
	if servedURL != base {
		t.Errorf("served URL = %q, expected the original", servedURL)
	}
	if !scrape.HasHeaderTable(doc) {
		t.Error("returned document has no header table")
	}
	if len(fetcher.fetched) != 2 {
		t.Errorf("expected both variants fetched, got %v", fetcher.fetched)
	}
}

func TestLeaguePageFallsBackOnFetchError(t *testing.T) {
	base := "https://stats.example.com/liga/wettbewerb/L3"
	fetcher := &fakeFetcher{pages: map[string]string{
		// plus variant 404s, only the original resolves
		base: headerTablePage,
	}}

	_, servedURL, err := LeaguePage(context.Background(), fetcher, base)
	if err != nil {
		t.Fatalf("LeaguePage failed: %v", err)
	}
	if servedURL != base {
		t.Errorf("served URL = %q, expected the original", servedURL)
	}
}

func TestLeaguePageNeitherVariantHasTable(t *testing.T) {
	base := "https://stats.example.com/liga/wettbewerb/L4"
	fetcher := &fakeFetcher{pages: map[string]string{
		base + "/plus/1": tablelessPage,
		base:             tablelessPage,
	}}

	_, _, err := LeaguePage(context.Background(), fetcher, base)
	if !errors.Is(err, scrape.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestLeaguePageAlreadyPlusFetchesOnce(t *testing.T) {
	plusURL := "https://stats.example.com/liga/wettbewerb/L5/plus/1"
	fetcher := &fakeFetcher{pages: map[string]string{}}

	_, _, err := LeaguePage(context.Background(), fetcher, plusURL)
	if err == nil {
		t.Fatal("expected an error when the only variant fails")
	}
	if len(fetcher.fetched) != 1 {
		t.Errorf("expected one fetch for an already-plus URL, got %v", fetcher.fetched)
	}
}
