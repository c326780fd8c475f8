// Package usecase implements the business logic for the watchlist feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required field is missing or malformed.
	// It is raised before any I/O happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound is returned when the user-facing identifier does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyInWatchlist is returned when (user, symbol) already exists.
	ErrAlreadyInWatchlist = errors.New("stock already in watchlist")

	// ErrMarketDataNotConfigured is returned when the market data provider has no API token.
	ErrMarketDataNotConfigured = errors.New("market data provider is not configured")
)

// ProviderError describes a failed market data fetch for a single symbol.
// It is logged and converted to nil fields; callers of Enrich never see it.
type ProviderError struct {
	Symbol   string
	Endpoint string // "quote" or "profile"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("market data %s for %s: %v", e.Endpoint, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
