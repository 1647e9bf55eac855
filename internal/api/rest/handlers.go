package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ligastats/sidelined/internal/scrape"
)

// InjuriesGetter is the service surface the handlers need.
type InjuriesGetter interface {
	GetLeagueInjuries(ctx context.Context, url string) (*scrape.LeagueResult, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	injuries InjuriesGetter
}

// NewHandler creates a new handler
func NewHandler(svc InjuriesGetter) *Handler {
	return &Handler{injuries: svc}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sidelined",
	})
}

// InjuriesRequest is the POST body for the injuries endpoint.
type InjuriesRequest struct {
	URL string `json:"url"`
}

// GetLeagueInjuries scrapes the injuries table for the requested league
// page. A page whose structure we do not recognize is a 404; a partially
// empty result is a normal 200.
func (h *Handler) GetLeagueInjuries(w http.ResponseWriter, r *http.Request) {
	var req InjuriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validateLeagueURL(req.URL); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid league URL", err)
		return
	}

	result, err := h.injuries.GetLeagueInjuries(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, scrape.ErrTableNotFound) {
			respondError(w, http.StatusNotFound, "No injuries table found for this league", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch league injuries", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func validateLeagueURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("url must be absolute http(s)")
	}
	return nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
