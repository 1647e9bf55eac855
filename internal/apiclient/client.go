// Package apiclient is the client side of the injuries API, used by the
// sidectl commands against a locally running service. It retries transient
// failures with exponential backoff.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ligastats/sidelined/internal/scrape"
)

// DefaultBaseURL of a locally running sidelined service.
const DefaultBaseURL = "http://localhost:8080"

// Client calls the injuries API with retry on transient failures.
type Client struct {
	baseURL    string
	http       *http.Client
	maxElapsed time.Duration
}

// New creates a client for the given base URL; empty means DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 60 * time.Second},
		maxElapsed: 2 * time.Minute,
	}
}

// GetLeagueInjuries POSTs the league URL to /players/injuries and decodes
// the result. Rate-limit and server-hiccup statuses (429, 502, 503, 504)
// and transport errors are retried with exponential backoff; other non-200
// statuses fail immediately.
func (c *Client) GetLeagueInjuries(ctx context.Context, leagueURL string) (*scrape.LeagueResult, error) {
	body, err := json.Marshal(map[string]string{"url": leagueURL})
	if err != nil {
		return nil, err
	}

	var result *scrape.LeagueResult
	attempt := 0

	operation := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/players/injuries", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		log.Printf("[apiclient] fetching %s (attempt %d)", leagueURL, attempt)
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if retryableStatus(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("retryable status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(data)))
		}

		var decoded scrape.LeagueResult
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		result = &decoded
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
