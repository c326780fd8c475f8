// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
)

// DefaultSearchLimit caps the number of search results.
const DefaultSearchLimit = 20

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
}

// WatchlistMembership reports which symbols a user is already watching.
type WatchlistMembership interface {
	ListSymbols(ctx context.Context, email string) ([]string, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo       SymbolRepository
	membership WatchlistMembership
}

// NewSymbolUsecase creates a new SymbolUsecase. membership may be nil.
func NewSymbolUsecase(r SymbolRepository, membership WatchlistMembership) *SymbolUsecase {
	return &SymbolUsecase{repo: r, membership: membership}
}

// Catalog lists active symbols, or searches them when query is non-empty, and marks
// the ones on the user's watchlist. A membership lookup failure leaves every flag false.
func (u *SymbolUsecase) Catalog(ctx context.Context, email, query string) ([]entity.CatalogItem, error) {
	var (
		symbols []entity.Symbol
		err     error
	)
	if q := strings.TrimSpace(query); q != "" {
		symbols, err = u.repo.Search(ctx, q, DefaultSearchLimit)
	} else {
		symbols, err = u.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	watched := u.watched(ctx, email)
	out := make([]entity.CatalogItem, 0, len(symbols))
	for _, s := range symbols {
		_, ok := watched[strings.ToUpper(s.Code)]
		out = append(out, entity.CatalogItem{Symbol: s, InWatchlist: ok})
	}
	return out, nil
}

func (u *SymbolUsecase) watched(ctx context.Context, email string) map[string]struct{} {
	set := map[string]struct{}{}
	if u.membership == nil || strings.TrimSpace(email) == "" {
		return set
	}
	symbols, err := u.membership.ListSymbols(ctx, email)
	if err != nil {
		slog.Warn("failed to load watchlist membership", "error", err)
		return set
	}
	for _, s := range symbols {
		set[strings.ToUpper(s)] = struct{}{}
	}
	return set
}
