// Package fetch retrieves league pages and hands the scrape pipeline a
// parsed document. It owns the two-variant URL bootstrap; the pipeline
// itself never performs I/O.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// UserAgent for plain HTTP requests.
	UserAgent = "sidelined/1.0 (github.com/ligastats/sidelined)"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second
)

// Fetcher retrieves one URL as a parsed document. Implementations must be
// safe for concurrent use by independent requests.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Client fetches pages with a plain net/http client. It works for leagues
// that serve full HTML to non-browser agents; see BrowserClient for the
// rest.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the default timeout and user agent.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch retrieves the URL and parses the response body.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
