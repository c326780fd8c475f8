package adapters

import (
	"context"
	"errors"

	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	authusecase "watchlist_backend/internal/feature/auth/usecase"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// UserFinder looks up identity records by email.
// It is satisfied by the auth feature's user repository.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)
}

// identityResolver resolves an email to the internal user key.
type identityResolver struct {
	users UserFinder
}

var _ usecase.IdentityResolver = (*identityResolver)(nil)

// NewIdentityResolver creates an IdentityResolver backed by the auth user store.
func NewIdentityResolver(users UserFinder) *identityResolver {
	return &identityResolver{users: users}
}

// ResolveUserID returns usecase.ErrUserNotFound when the email is unknown.
// The email is matched the way signup stored it (trimmed, lower-cased).
func (r *identityResolver) ResolveUserID(ctx context.Context, email string) (uint, error) {
	u, err := r.users.FindByEmail(ctx, authusecase.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return 0, usecase.ErrUserNotFound
		}
		return 0, err
	}
	if u == nil || u.ID == 0 {
		return 0, usecase.ErrUserNotFound
	}
	return u.ID, nil
}
