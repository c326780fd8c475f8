// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
// InWatchlist tells clients whether to render an add or a remove action.
type SymbolItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Exchange    string `json:"exchange"`
	InWatchlist bool   `json:"in_watchlist"`
}
