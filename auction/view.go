package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gavel/models"
)

// ListingView bundles everything the detail page renders.
type ListingView struct {
	Listing    models.Listing
	Comments   []models.Comment
	CurrentBid *models.Bid

	// Caller-dependent flags; zero-valued for anonymous viewers.
	InWatchlist bool
	CanClose    bool

	// Set only when the listing is closed and the viewer is signed in.
	WinnerAnnouncement string
}

// ViewListing assembles the detail-page view model. A non-empty toggle is
// applied to the caller's watchlist membership before InWatchlist is
// computed, matching the detail page's POST behavior.
func (s *Service) ViewListing(ctx context.Context, listingID, caller uuid.UUID, toggle WatchAction) (*ListingView, error) {
	const op = "ViewListing"
	if toggle != "" {
		if err := s.ToggleWatchlist(ctx, caller, listingID, toggle); err != nil {
			return nil, err
		}
	}

	var listing models.Listing
	result := s.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("CurrentBid.User").
		Preload("Comments.User").
		First(&listing, "id = ?", listingID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find listing, err=%w", op, result.Error)
	}

	view := ListingView{
		Listing:    listing,
		Comments:   listing.Comments,
		CurrentBid: listing.CurrentBid,
	}
	if caller == uuid.Nil {
		return &view, nil
	}

	inWatchlist, err := s.watching(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}
	view.InWatchlist = inWatchlist
	view.CanClose = listing.UserID == caller
	if listing.Closed {
		if listing.CurrentBid != nil {
			view.WinnerAnnouncement = fmt.Sprintf("This auction listing is won by %s", listing.CurrentBid.User.DisplayName())
		} else {
			view.WinnerAnnouncement = "Nobody bid this auction."
		}
	}
	return &view, nil
}
