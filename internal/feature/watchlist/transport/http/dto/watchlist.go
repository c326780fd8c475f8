// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	"time"

	"github.com/dustin/go-humanize"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// AddReq is the body of POST /watchlist.
type AddReq struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}

// MutationRes is the body returned by add and remove.
type MutationRes struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// EntryItem represents a watchlist entry in the API response.
type EntryItem struct {
	Symbol   string    `json:"symbol"`
	Company  string    `json:"company"`
	AddedAt  time.Time `json:"added_at"`
	AddedAgo string    `json:"added_ago"`
}

// NewEntryItems converts entries, rendering AddedAgo relative to now.
func NewEntryItems(entries []entity.Entry, now time.Time) []EntryItem {
	out := make([]EntryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryItem{
			Symbol:   e.Symbol,
			Company:  e.Company,
			AddedAt:  e.AddedAt,
			AddedAgo: humanize.RelTime(e.AddedAt, now, "ago", "from now"),
		})
	}
	return out
}
