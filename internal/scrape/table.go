package scrape

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound is the one hard failure of the pipeline: no table in the
// document (or in either URL variant) qualifies as the injuries table.
// Everything less than that degrades silently to omitted fields.
var ErrTableNotFound = errors.New("injuries table not found")

// LocateInjuriesTable finds the table most likely to hold the injury rows.
// Cascade, most to least specific:
//
//  1. a table whose class contains an "items" or "responsive" marker and
//     that has at least one header cell
//  2. any table with at least one header cell
//
// The first match in document order from the first level that yields any
// match wins. The cascade is the defense against the site restyling tables
// without changing their structure.
func LocateInjuriesTable(doc *goquery.Document) (*goquery.Selection, error) {
	if t := firstTable(doc, func(t *goquery.Selection) bool {
		class, _ := t.Attr("class")
		marked := strings.Contains(class, "items") || strings.Contains(class, "responsive")
		return marked && hasHeaderCell(t)
	}); t != nil {
		return t, nil
	}

	// Layout-agnostic fallback.
	if t := firstTable(doc, hasHeaderCell); t != nil {
		return t, nil
	}

	return nil, ErrTableNotFound
}

func firstTable(doc *goquery.Document, accept func(*goquery.Selection) bool) *goquery.Selection {
	var match *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, t *goquery.Selection) bool {
		if accept(t) {
			match = t
			return false
		}
		return true
	})
	return match
}

func hasHeaderCell(t *goquery.Selection) bool {
	return t.Find("thead th").Length() > 0
}

// HasHeaderTable reports whether the document contains any header-bearing
// table at all. The fetch bootstrap uses this as its (deliberately weak)
// guard when deciding between URL variants.
func HasHeaderTable(doc *goquery.Document) bool {
	return doc.Find("table thead th").Length() > 0
}
