package auction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/models"
)

func TestPlaceBid(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	category := seedCategory(t, s, "Antiques")
	listing := seedListing(t, s, alice, category, 100)

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, uuid.Nil, listing.ID, "100")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, bob.ID, uuid.New(), "100")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-numeric price", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "a lot")
		assert.NotNil(t, AsValidation(err))
	})

	t.Run("below starting price", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "99")
		ve := AsValidation(err)
		require.NotNil(t, ve)
		assert.Equal(t, BidRejectedMessage, ve.Message)
	})

	t.Run("at starting price", func(t *testing.T) {
		bid, err := s.PlaceBid(ctx, bob.ID, listing.ID, "100")
		require.NoError(t, err)
		assert.EqualValues(t, 100, bid.Amount)
	})

	t.Run("higher bid accepted and becomes current", func(t *testing.T) {
		bid, err := s.PlaceBid(ctx, alice.ID, listing.ID, "150")
		require.NoError(t, err)

		var got models.Listing
		require.NoError(t, s.db.First(&got, "id = ?", listing.ID).Error)
		require.NotNil(t, got.CurrentBidID)
		assert.Equal(t, bid.ID, *got.CurrentBidID)
	})

	t.Run("equal to current bid rejected", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "150")
		ve := AsValidation(err)
		require.NotNil(t, ve)
		assert.Equal(t, BidRejectedMessage, ve.Message)
	})

	t.Run("one above current bid accepted", func(t *testing.T) {
		_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "151")
		assert.NoError(t, err)
	})

	t.Run("closed listing rejects bids", func(t *testing.T) {
		require.NoError(t, s.CloseListing(ctx, alice.ID, listing.ID))
		_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "500")
		assert.NotNil(t, AsValidation(err))
	})
}

func TestPlaceBidRejectionPersistsNothing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	category := seedCategory(t, s, "Antiques")
	listing := seedListing(t, s, alice, category, 100)

	_, err := s.PlaceBid(ctx, bob.ID, listing.ID, "99")
	require.NotNil(t, AsValidation(err))

	var bidCount int64
	require.NoError(t, s.db.Model(&models.Bid{}).Where("listing_id = ?", listing.ID).Count(&bidCount).Error)
	assert.Zero(t, bidCount)

	var got models.Listing
	require.NoError(t, s.db.First(&got, "id = ?", listing.ID).Error)
	assert.Nil(t, got.CurrentBidID)
}
