// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Entry is a single instrument tracked by a user.
type Entry struct {
	ID      uint      // Surrogate key
	UserID  uint      // Internal user key resolved from the identity record
	Symbol  string    // Upper-cased ticker, unique per UserID
	Company string    // Display name captured when the entry was added
	AddedAt time.Time // Creation time; default sort key (newest first)
}

// EnrichedRow is an Entry joined with live market data.
// It is computed on every read and never persisted.
type EnrichedRow struct {
	Symbol        string
	Company       string
	Price         *float64 // Current price (nil when the quote fetch failed)
	Change        *float64 // Absolute change from previous close
	ChangePercent *float64 // Percent change from previous close
	MarketCap     *float64 // Market capitalization in billions of currency units
	PERatio       *float64 // No data source yet; always nil
}
