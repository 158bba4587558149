package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gavel/models"
)

// WatchAction selects the direction of a watchlist toggle.
type WatchAction string

const (
	WatchAdd    WatchAction = "add"
	WatchRemove WatchAction = "remove"
)

// ToggleWatchlist adds or removes the membership edge between the caller and
// a listing. Both directions are idempotent: adding twice keeps a single
// edge, removing an absent edge is a no-op.
func (s *Service) ToggleWatchlist(ctx context.Context, caller, listingID uuid.UUID, action WatchAction) error {
	const op = "ToggleWatchlist"
	if caller == uuid.Nil {
		return fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	var count int64
	if result := s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listingID).Count(&count); result.Error != nil {
		return fmt.Errorf("[%s] Fail to find listing, err=%w", op, result.Error)
	}
	if count == 0 {
		return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	user := models.User{ID: caller}
	watchlist := s.db.WithContext(ctx).Model(&user).Association("Watchlist")
	switch action {
	case WatchAdd:
		if err := watchlist.Append(&models.Listing{ID: listingID}); err != nil {
			return fmt.Errorf("[%s] Fail to add watchlist entry, err=%w", op, err)
		}
	case WatchRemove:
		if err := watchlist.Delete(&models.Listing{ID: listingID}); err != nil {
			return fmt.Errorf("[%s] Fail to remove watchlist entry, err=%w", op, err)
		}
	default:
		return &ValidationError{Message: fmt.Sprintf("Unknown watchlist action %q.", action)}
	}
	return nil
}

// watching reports whether the user currently has the listing watchlisted.
func (s *Service) watching(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	const op = "watching"
	var count int64
	result := s.db.WithContext(ctx).
		Table("watchlist_entries").
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("[%s] Fail to count watchlist entries, err=%w", op, result.Error)
	}
	return count > 0, nil
}
