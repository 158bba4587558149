package auction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gavel/models"
)

// PlaceBid records a bid on an open listing.
//
// Acceptance rule: the price must be at least the starting price and, when a
// prior bid exists, strictly greater than the current highest bid. The check
// and the insert run inside one transaction, and the listing's denormalized
// CurrentBidID is updated in the same transaction, so the current bid is
// always the highest one. Two simultaneous bidders can still race across
// transactions; that is accepted as best-effort.
func (s *Service) PlaceBid(ctx context.Context, caller, listingID uuid.UUID, rawPrice string) (*models.Bid, error) {
	const op = "PlaceBid"
	if caller == uuid.Nil {
		return nil, fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	price64, err := strconv.ParseUint(strings.TrimSpace(rawPrice), 10, 32)
	if err != nil || price64 == 0 {
		return nil, &ValidationError{
			Message: "Bid must be a positive integer.",
			Fields:  []FieldError{{Field: "price", Message: "Bid must be a positive integer."}},
		}
	}
	price := uint32(price64)

	var bid models.Bid
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		result := tx.Preload("CurrentBid").First(&listing, "id = ?", listingID)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
		}
		if result.Error != nil {
			return fmt.Errorf("[%s] Fail to find listing, err=%w", op, result.Error)
		}
		if listing.Closed {
			return &ValidationError{Message: "This auction listing is closed."}
		}
		if price < listing.StartingPrice || (listing.CurrentBid != nil && price <= listing.CurrentBid.Amount) {
			return &ValidationError{
				Message: BidRejectedMessage,
				Fields:  []FieldError{{Field: "price", Message: BidRejectedMessage}},
			}
		}
		bid = models.Bid{
			Amount:    price,
			UserID:    caller,
			ListingID: listingID,
		}
		if result := tx.Create(&bid); result.Error != nil {
			return fmt.Errorf("[%s] Fail to create bid, err=%w", op, result.Error)
		}
		if result := tx.Model(&listing).Update("current_bid_id", bid.ID); result.Error != nil {
			return fmt.Errorf("[%s] Fail to update current bid, err=%w", op, result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bid, nil
}
