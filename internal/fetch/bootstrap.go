package fetch

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ligastats/sidelined/internal/scrape"
)

// plusSuffix marks the richer page variant that exposes extra columns.
const plusSuffix = "/plus/1"

// EnsurePlusVariant appends the richer-variant path suffix when the URL does
// not already carry one. Query and fragment are left untouched; an
// unparseable URL is returned unchanged.
func EnsurePlusVariant(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if strings.Contains(u.Path, "/plus/") {
		return raw
	}
	u.Path = strings.TrimRight(u.Path, "/") + plusSuffix
	return u.String()
}

// LeaguePage fetches the injuries page for a league, trying the richer
// "plus" variant first and falling back to the original URL. The richer
// variant does not exist for every league, so a fetched document only
// counts if it carries at least one header-bearing table. Returns the
// document together with the URL that actually produced it.
//
// When neither variant yields a header-bearing table the error wraps
// scrape.ErrTableNotFound; a transport failure on both variants surfaces
// the last fetch error instead.
func LeaguePage(ctx context.Context, fetcher Fetcher, rawURL string) (*goquery.Document, string, error) {
	primary := EnsurePlusVariant(rawURL)
	candidates := []string{primary}
	if primary != rawURL {
		candidates = append(candidates, rawURL)
	}

	var lastErr error
	fetched := false
	for _, candidate := range candidates {
		doc, err := fetcher.Fetch(ctx, candidate)
		if err != nil {
			log.Printf("[fetch] %s: %v", candidate, err)
			lastErr = err
			continue
		}
		fetched = true
		if scrape.HasHeaderTable(doc) {
			return doc, candidate, nil
		}
		log.Printf("[fetch] %s: no header-bearing table, trying next variant", candidate)
	}

	if !fetched && lastErr != nil {
		return nil, "", fmt.Errorf("fetching league page: %w", lastErr)
	}
	return nil, "", fmt.Errorf("no variant of %s has a header-bearing table: %w", rawURL, scrape.ErrTableNotFound)
}
