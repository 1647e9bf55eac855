package scrape

import (
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ligastats/sidelined/internal/urlutil"
)

// Extract runs the full pipeline over one document: locate the injuries
// table, build its column map, parse every data row, and attach page-level
// metadata. The only hard failure is ErrTableNotFound; everything else
// degrades to omitted fields or dropped rows. An empty Rows slice is a
// valid success value.
func Extract(doc *goquery.Document, requestedURL string) (*LeagueResult, error) {
	table, err := LocateInjuriesTable(doc)
	if err != nil {
		return nil, err
	}

	cols := BuildColumnMap(table)
	if !cols.Has(FieldPlayer) || !cols.Has(FieldInjury) {
		log.Printf("[scrape] column map incomplete (%d fields mapped), relying on row fallbacks", len(cols))
	}

	rows := make([]InjuryRecord, 0)
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		if tr.ChildrenFiltered("td").Length() == 0 {
			return
		}
		if record := ParseRow(tr, cols); record != nil {
			rows = append(rows, *record)
		}
	})

	result := &LeagueResult{
		League: LeagueRef{
			Name: guessLeagueName(doc),
			URL:  canonicalURL(doc, requestedURL),
		},
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:      rows,
	}
	return result, nil
}

// guessLeagueName tries, in order: the page h1, the last breadcrumb item,
// the page title. First non-empty wins; nil when all are empty.
func guessLeagueName(doc *goquery.Document) *string {
	if name := nodeText(doc.Find("h1").First()); name != "" {
		return &name
	}
	if name := nodeText(doc.Find("nav ol li").Last()); name != "" {
		return &name
	}
	if name := nodeText(doc.Find("title").First()); name != "" {
		return &name
	}
	return nil
}

// canonicalURL returns the page's self-declared address, falling back to
// the originally requested URL.
func canonicalURL(doc *goquery.Document, requestedURL string) string {
	if href, ok := doc.Find("link[rel='canonical']").First().Attr("href"); ok {
		if href = urlutil.Trim(href); href != "" {
			return href
		}
	}
	if content, ok := doc.Find("meta[property='og:url']").First().Attr("content"); ok {
		if content = urlutil.Trim(content); content != "" {
			return content
		}
	}
	return requestedURL
}
