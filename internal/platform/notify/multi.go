package notify

import (
	"context"
	"errors"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// Multi fans an event out to every notifier and joins their errors.
type Multi []usecase.ChangeNotifier

var _ usecase.ChangeNotifier = Multi(nil)

// Notify calls every notifier even if an earlier one fails.
func (m Multi) Notify(ctx context.Context, ev entity.ChangeEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
