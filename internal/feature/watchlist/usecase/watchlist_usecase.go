package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

const (
	// MaxSymbolLength is the longest ticker accepted by Add.
	MaxSymbolLength = 20
	// MaxCompanyLength is the longest company name accepted by Add, counted in characters.
	MaxCompanyLength = 255
)

// validSymbol also admits "^" so index tickers such as ^GSPC can be watched.
var validSymbol = regexp.MustCompile(`^[A-Z0-9.:^\-]+$`)

// User-facing messages returned in Result.Message.
const (
	msgMissingFields  = "Missing required fields"
	msgUserNotFound   = "User not found"
	msgAlreadyExists  = "Stock already in watchlist"
	msgAddFailed      = "Failed to add to watchlist"
	msgRemoveFailed   = "Failed to remove from watchlist"
	msgInvalidSymbol  = "Invalid symbol"
	msgCompanyTooLong = "Company name is too long"
)

// WatchlistRepository abstracts the persistence layer for watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// ListByUser returns the user's entries, most recently added first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Entry, error)
	// ListSymbolsByUser returns only the symbols of the user's entries.
	ListSymbolsByUser(ctx context.Context, userID uint) ([]string, error)
	// Add inserts an entry. It returns ErrAlreadyInWatchlist if (userID, symbol) exists.
	Add(ctx context.Context, userID uint, symbol, company string) (*entity.Entry, error)
	// Remove deletes an entry. Removing an absent entry is not an error.
	Remove(ctx context.Context, userID uint, symbol string) error
}

// IdentityResolver maps a user-facing identifier (email) to the internal user key.
type IdentityResolver interface {
	// ResolveUserID returns ErrUserNotFound when no user has the given email.
	ResolveUserID(ctx context.Context, email string) (uint, error)
}

// ChangeNotifier tells collaborators that a cached view of a watchlist is stale.
type ChangeNotifier interface {
	Notify(ctx context.Context, ev entity.ChangeEvent) error
}

// Result is the outcome of a mutation. It never carries a panic or an unhandled error
// past the usecase; Err is kept for logging and status mapping.
type Result struct {
	Success bool
	Message string
	Err     error
}

func failure(msg string, err error) Result {
	return Result{Success: false, Message: msg, Err: err}
}

// WatchlistUsecase provides watchlist reads and mutations keyed by email.
type WatchlistUsecase struct {
	repo     WatchlistRepository
	identity IdentityResolver
	notifier ChangeNotifier
	now      func() time.Time
}

// NewWatchlistUsecase creates a new WatchlistUsecase. notifier may be nil.
func NewWatchlistUsecase(repo WatchlistRepository, identity IdentityResolver, notifier ChangeNotifier) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, identity: identity, notifier: notifier, now: time.Now}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol exceeds %d characters", ErrInvalidInput, MaxSymbolLength)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("%w: symbol %q contains invalid characters", ErrInvalidInput, symbol)
	}
	return nil
}

// resolve maps the email to the internal user key.
func (u *WatchlistUsecase) resolve(ctx context.Context, email string) (uint, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return u.identity.ResolveUserID(ctx, email)
}

// List returns the user's entries, most recently added first.
func (u *WatchlistUsecase) List(ctx context.Context, email string) ([]entity.Entry, error) {
	userID, err := u.resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	entries, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return entries, nil
}

// ListSymbols returns the set of symbols the user is watching.
func (u *WatchlistUsecase) ListSymbols(ctx context.Context, email string) ([]string, error) {
	userID, err := u.resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	symbols, err := u.repo.ListSymbolsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist symbols: %w", err)
	}
	return symbols, nil
}

// Add puts a symbol on the user's watchlist.
func (u *WatchlistUsecase) Add(ctx context.Context, email, symbol, company string) Result {
	company = strings.TrimSpace(company)
	symbol = NormalizeSymbol(symbol)
	if strings.TrimSpace(email) == "" || symbol == "" || company == "" {
		return failure(msgMissingFields, ErrInvalidInput)
	}
	if err := validateSymbol(symbol); err != nil {
		return failure(msgInvalidSymbol, err)
	}
	if utf8.RuneCountInString(company) > MaxCompanyLength {
		return failure(msgCompanyTooLong, fmt.Errorf("%w: company exceeds %d characters", ErrInvalidInput, MaxCompanyLength))
	}

	userID, err := u.resolve(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return failure(msgUserNotFound, err)
		}
		return failure(msgAddFailed, err)
	}

	if _, err := u.repo.Add(ctx, userID, symbol, company); err != nil {
		if errors.Is(err, ErrAlreadyInWatchlist) {
			return failure(msgAlreadyExists, err)
		}
		return failure(msgAddFailed, err)
	}

	u.notify(ctx, userID, symbol, entity.ChangeActionAdded)
	return Result{Success: true}
}

// Remove takes a symbol off the user's watchlist. It succeeds when the symbol was not there.
// Only presence is checked so that entries stored under older symbol rules can still be removed.
func (u *WatchlistUsecase) Remove(ctx context.Context, email, symbol string) Result {
	symbol = NormalizeSymbol(symbol)
	if strings.TrimSpace(email) == "" || symbol == "" {
		return failure(msgMissingFields, ErrInvalidInput)
	}

	userID, err := u.resolve(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return failure(msgUserNotFound, err)
		}
		return failure(msgRemoveFailed, err)
	}

	if err := u.repo.Remove(ctx, userID, symbol); err != nil {
		return failure(msgRemoveFailed, err)
	}

	u.notify(ctx, userID, symbol, entity.ChangeActionRemoved)
	return Result{Success: true}
}

// notify is best effort: a failed signal never fails the mutation.
func (u *WatchlistUsecase) notify(ctx context.Context, userID uint, symbol string, action entity.ChangeAction) {
	if u.notifier == nil {
		return
	}
	ev := entity.ChangeEvent{UserID: userID, Symbol: symbol, Action: action, OccurredAt: u.now()}
	if err := u.notifier.Notify(ctx, ev); err != nil {
		slog.Warn("failed to publish watchlist change", "user_id", userID, "symbol", symbol, "action", action, "error", err)
	}
}
