package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ligastats/sidelined/internal/scrape"
)

// stubService returns a fixed result or error regardless of the URL.
type stubService struct {
	result *scrape.LeagueResult
	err    error

	requestedURL string
}

func (s *stubService) GetLeagueInjuries(ctx context.Context, url string) (*scrape.LeagueResult, error) {
	s.requestedURL = url
	return s.result, s.err
}

func postInjuries(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/players/injuries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.GetLeagueInjuries(rec, req)
	return rec
}

func TestGetLeagueInjuriesOK(t *testing.T) {
	name := "Bundesliga"
	svc := &stubService{result: &scrape.LeagueResult{
		League:    scrape.LeagueRef{Name: &name, URL: "https://stats.example.com/bundesliga/wettbewerb/L1/plus/1"},
		UpdatedAt: "2026-08-30T12:00:00Z",
		Rows: []scrape.InjuryRecord{
			{Player: scrape.PlayerRef{Name: "Jamal Musiala"}, Injury: "Ankle injury"},
		},
	}}
	h := NewHandler(svc)

	rec := postInjuries(t, h, `{"url":"https://stats.example.com/bundesliga/wettbewerb/L1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}
	if svc.requestedURL != "https://stats.example.com/bundesliga/wettbewerb/L1" {
		t.Errorf("service received URL %q", svc.requestedURL)
	}

	var result scrape.LeagueResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.League.Name == nil || *result.League.Name != "Bundesliga" {
		t.Errorf("unexpected league name %v", result.League.Name)
	}
	if len(result.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(result.Rows))
	}
}

func TestGetLeagueInjuriesBadBody(t *testing.T) {
	h := NewHandler(&stubService{})

	rec := postInjuries(t, h, `{"url":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestGetLeagueInjuriesInvalidURL(t *testing.T) {
	h := NewHandler(&stubService{})

	tests := []string{
		`{"url":""}`,
		`{"url":"not a url"}`,
		`{"url":"/relative/path"}`,
		`{"url":"ftp://stats.example.com/liga"}`,
	}
	for _, body := range tests {
		rec := postInjuries(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, expected 400", body, rec.Code)
		}
	}
}

func TestGetLeagueInjuriesTableNotFound(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("no variant has a header-bearing table: %w", scrape.ErrTableNotFound)}
	h := NewHandler(svc)

	rec := postInjuries(t, h, `{"url":"https://stats.example.com/liga/wettbewerb/L9"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, expected 404", rec.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if response["error"] == "" {
		t.Error("error response missing error message")
	}
}

func TestGetLeagueInjuriesUpstreamFailure(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("fetching league page: connection refused")}
	h := NewHandler(svc)

	rec := postInjuries(t, h, `{"url":"https://stats.example.com/liga/wettbewerb/L1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q", body["status"])
	}
}
