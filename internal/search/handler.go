// Package search serves case-insensitive name lookups across the catalogue.
package search

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"holocron/internal/apperror"
	"holocron/internal/logging"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Handler responds to search requests backed by the Store.
type Handler struct {
	store Store
}

// NewHandler builds a handler using the provided store implementation.
func NewHandler(store Store) http.Handler {
	return &Handler{store: store}
}

// Response models the payload returned by the search handler.
type Response struct {
	Sections []Section `json:"sections"`
}

// Section groups related search results.
type Section struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item represents a single search result entry.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, Response{Sections: []Section{}})
		return
	}

	limit := defaultLimit
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = min(parsed, maxLimit)
		}
	}

	results, err := h.store.Search(r.Context(), query, limit)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("query", query).Msg("search failed")
		apperror.Write(w, apperror.NewDatabaseError("search failed", err))
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(results))
}

func buildResponse(results Results) Response {
	sections := []Section{}

	if len(results.Planets) > 0 {
		items := make([]Item, 0, len(results.Planets))
		for _, planet := range results.Planets {
			items = append(items, Item{
				ID:          planet.ID,
				Title:       planet.Name,
				Description: planet.Description,
				Href:        "/planet/" + strconv.FormatInt(planet.ID, 10),
			})
		}
		sections = append(sections, Section{Name: "planets", Items: items})
	}

	if len(results.Characters) > 0 {
		items := make([]Item, 0, len(results.Characters))
		for _, character := range results.Characters {
			items = append(items, Item{
				ID:          character.ID,
				Title:       character.Name,
				Description: character.Description,
				Href:        "/character/" + strconv.FormatInt(character.ID, 10),
			})
		}
		sections = append(sections, Section{Name: "characters", Items: items})
	}

	return Response{Sections: sections}
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
