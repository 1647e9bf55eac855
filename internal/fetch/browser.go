package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// BrowserUserAgent presented by the headless browser.
	BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval between browser fetches, to stay under the
	// source's rate limits.
	MinRequestInterval = 2 * time.Second
)

// BrowserClient fetches pages through a headless browser. Some league pages
// sit behind a bot wall that rejects plain HTTP clients; rendering with a
// real browser engine gets past it and also executes any markup-completing
// scripts.
type BrowserClient struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowserClient creates a headless-browser fetcher.
func NewBrowserClient() (*BrowserClient, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(BrowserUserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserClient{
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (c *BrowserClient) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Fetch renders the URL in the headless browser and parses the resulting
// HTML. Requests are spaced by MinRequestInterval.
func (c *BrowserClient) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	c.throttle()

	html, err := c.render(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

func (c *BrowserClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.interval {
			wait := c.interval - elapsed
			log.Printf("[fetch] rate limiting: waiting %v before next request", wait)
			time.Sleep(wait)
		}
	}
	c.lastRequest = time.Now()
}

func (c *BrowserClient) render(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, DefaultTimeout)
	defer cancel()

	// Stop waiting if the caller gives up first.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-browserCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // allow late-loading table markup
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return html, nil
}
