package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/platform/metrics"
)

const (
	// DefaultFetchTimeout bounds a single quote or profile fetch.
	DefaultFetchTimeout = 8 * time.Second
	// DefaultMaxConcurrency is the number of fetches in flight per Enrich call.
	DefaultMaxConcurrency = 8
)

// MarketDataClient fetches live market data for a symbol.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform).
type MarketDataClient interface {
	// Configured reports whether the client has credentials to call the provider.
	Configured() bool
	// FetchQuote returns the current quote. Implementations must not cache it.
	FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	// FetchProfile returns the company profile. Implementations may cache it.
	FetchProfile(ctx context.Context, symbol string) (*entity.Profile, error)
}

// ErrorReporter forwards errors that operators should see (e.g. misconfiguration).
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

// EnrichConfig tunes the fan-out of an Enrich call.
type EnrichConfig struct {
	FetchTimeout   time.Duration
	MaxConcurrency int
}

// EnrichUsecase joins a user's watchlist with live market data.
type EnrichUsecase struct {
	repo     WatchlistRepository
	identity IdentityResolver
	market   MarketDataClient
	reporter ErrorReporter
	cfg      EnrichConfig
}

// NewEnrichUsecase creates a new EnrichUsecase. reporter may be nil.
// Zero values in cfg fall back to DefaultFetchTimeout and DefaultMaxConcurrency.
func NewEnrichUsecase(repo WatchlistRepository, identity IdentityResolver, market MarketDataClient, reporter ErrorReporter, cfg EnrichConfig) *EnrichUsecase {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	return &EnrichUsecase{repo: repo, identity: identity, market: market, reporter: reporter, cfg: cfg}
}

// fetchResult is the isolated slot one fetch task writes into.
type fetchResult[T any] struct {
	val *T
	err error
}

// Enrich returns one EnrichedRow per watchlist entry, in ListByUser order.
//
// A failed quote or profile fetch leaves the corresponding fields nil and never affects
// other rows. If the market data client has no credentials, the entries are returned with
// every market field nil and no request is made. Only identity or store failures return an error.
func (u *EnrichUsecase) Enrich(ctx context.Context, email string) ([]entity.EnrichedRow, error) {
	start := time.Now()
	defer func() { metrics.EnrichDuration.Observe(time.Since(start).Seconds()) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	userID, err := u.identity.ResolveUserID(ctx, email)
	if err != nil {
		return nil, err
	}
	entries, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	if len(entries) == 0 {
		return []entity.EnrichedRow{}, nil
	}

	if !u.market.Configured() {
		slog.Error("market data API key is not configured; returning watchlist without market data", "user_id", userID, "entries", len(entries))
		if u.reporter != nil {
			u.reporter.Report(ctx, ErrMarketDataNotConfigured)
		}
		return assemble(entries, nil, nil), nil
	}

	quotes := make([]fetchResult[entity.Quote], len(entries))
	profiles := make([]fetchResult[entity.Profile], len(entries))

	var g errgroup.Group
	g.SetLimit(u.cfg.MaxConcurrency)
	for i, e := range entries {
		g.Go(func() error {
			quotes[i] = fetch(ctx, u.cfg.FetchTimeout, e.Symbol, "quote", u.market.FetchQuote)
			return nil
		})
		g.Go(func() error {
			profiles[i] = fetch(ctx, u.cfg.FetchTimeout, e.Symbol, "profile", u.market.FetchProfile)
			return nil
		})
	}
	// Tasks never return an error, so one failure cannot cancel its siblings.
	_ = g.Wait()

	return assemble(entries, quotes, profiles), nil
}

// fetch runs fn with its own deadline. A call that ignores ctx is abandoned when the
// deadline passes, so a hanging provider cannot stall the whole Enrich call.
func fetch[T any](ctx context.Context, timeout time.Duration, symbol, endpoint string, fn func(context.Context, string) (*T, error)) (res fetchResult[T]) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan fetchResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult[T]{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := fn(ctx, symbol)
		done <- fetchResult[T]{val: v, err: err}
	}()

	select {
	case res = <-done:
	case <-ctx.Done():
		res = fetchResult[T]{err: ctx.Err()}
	}

	if res.err != nil {
		perr := &ProviderError{Symbol: symbol, Endpoint: endpoint, Err: res.err}
		slog.Warn("market data fetch failed", "symbol", symbol, "endpoint", endpoint, "error", res.err)
		metrics.EnrichFieldFailures.WithLabelValues(endpoint).Inc()
		return fetchResult[T]{err: perr}
	}
	return res
}

// assemble folds fetch results into rows by position. nil slices mean "no data".
func assemble(entries []entity.Entry, quotes []fetchResult[entity.Quote], profiles []fetchResult[entity.Profile]) []entity.EnrichedRow {
	rows := make([]entity.EnrichedRow, len(entries))
	for i, e := range entries {
		row := entity.EnrichedRow{Symbol: e.Symbol, Company: e.Company}
		if quotes != nil {
			if q := quotes[i]; q.err == nil && q.val != nil {
				row.Price = q.val.CurrentPrice
				row.Change = q.val.Change
				row.ChangePercent = q.val.ChangePercent
			}
		}
		if profiles != nil {
			if p := profiles[i]; p.err == nil && p.val != nil {
				row.MarketCap = p.val.MarketCapitalization
			}
		}
		rows[i] = row
	}
	return rows
}
