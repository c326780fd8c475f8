package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// mockWatchlistRepository is a mock implementation of WatchlistRepository.
type mockWatchlistRepository struct {
	ListByUserFunc        func(ctx context.Context, userID uint) ([]entity.Entry, error)
	ListSymbolsByUserFunc func(ctx context.Context, userID uint) ([]string, error)
	AddFunc               func(ctx context.Context, userID uint, symbol, company string) (*entity.Entry, error)
	RemoveFunc            func(ctx context.Context, userID uint, symbol string) error
}

func (m *mockWatchlistRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Entry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWatchlistRepository) ListSymbolsByUser(ctx context.Context, userID uint) ([]string, error) {
	if m.ListSymbolsByUserFunc != nil {
		return m.ListSymbolsByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWatchlistRepository) Add(ctx context.Context, userID uint, symbol, company string) (*entity.Entry, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, symbol, company)
	}
	return &entity.Entry{UserID: userID, Symbol: symbol, Company: company}, nil
}

func (m *mockWatchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, symbol)
	}
	return nil
}

// mockIdentityResolver maps known emails to user IDs.
type mockIdentityResolver struct {
	users map[string]uint
	err   error
}

func (m *mockIdentityResolver) ResolveUserID(ctx context.Context, email string) (uint, error) {
	if m.err != nil {
		return 0, m.err
	}
	id, ok := m.users[email]
	if !ok {
		return 0, ErrUserNotFound
	}
	return id, nil
}

func knownUser() *mockIdentityResolver {
	return &mockIdentityResolver{users: map[string]uint{"user@example.com": 42}}
}

// mockNotifier records every event it receives.
type mockNotifier struct {
	mu     sync.Mutex
	events []entity.ChangeEvent
	err    error
}

func (m *mockNotifier) Notify(ctx context.Context, ev entity.ChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

// mockMarketDataClient is a mock implementation of MarketDataClient that counts calls.
type mockMarketDataClient struct {
	configured       bool
	FetchQuoteFunc   func(ctx context.Context, symbol string) (*entity.Quote, error)
	FetchProfileFunc func(ctx context.Context, symbol string) (*entity.Profile, error)

	quoteCalls   atomic.Int32
	profileCalls atomic.Int32
}

func (m *mockMarketDataClient) Configured() bool { return m.configured }

func (m *mockMarketDataClient) FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	m.quoteCalls.Add(1)
	if m.FetchQuoteFunc != nil {
		return m.FetchQuoteFunc(ctx, symbol)
	}
	return &entity.Quote{}, nil
}

func (m *mockMarketDataClient) FetchProfile(ctx context.Context, symbol string) (*entity.Profile, error) {
	m.profileCalls.Add(1)
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, symbol)
	}
	return &entity.Profile{}, nil
}

// mockReporter records reported errors.
type mockReporter struct {
	mu   sync.Mutex
	errs []error
}

func (m *mockReporter) Report(ctx context.Context, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

func ptr(v float64) *float64 { return &v }
