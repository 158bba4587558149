package auction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *Service) watchlistEdgeCount(t *testing.T, userID, listingID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Table("watchlist_entries").
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error)
	return count
}

func TestToggleWatchlist(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	category := seedCategory(t, s, "Antiques")
	listing := seedListing(t, s, alice, category, 10)

	t.Run("anonymous caller", func(t *testing.T) {
		assert.ErrorIs(t, s.ToggleWatchlist(ctx, uuid.Nil, listing.ID, WatchAdd), ErrUnauthorized)
	})

	t.Run("unknown listing", func(t *testing.T) {
		assert.ErrorIs(t, s.ToggleWatchlist(ctx, bob.ID, uuid.New(), WatchAdd), ErrNotFound)
	})

	t.Run("unknown action", func(t *testing.T) {
		err := s.ToggleWatchlist(ctx, bob.ID, listing.ID, WatchAction("star"))
		assert.NotNil(t, AsValidation(err))
	})

	t.Run("add twice keeps one edge", func(t *testing.T) {
		require.NoError(t, s.ToggleWatchlist(ctx, bob.ID, listing.ID, WatchAdd))
		require.NoError(t, s.ToggleWatchlist(ctx, bob.ID, listing.ID, WatchAdd))
		assert.EqualValues(t, 1, s.watchlistEdgeCount(t, bob.ID, listing.ID))
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, s.ToggleWatchlist(ctx, bob.ID, listing.ID, WatchRemove))
		require.NoError(t, s.ToggleWatchlist(ctx, bob.ID, listing.ID, WatchRemove))
		assert.Zero(t, s.watchlistEdgeCount(t, bob.ID, listing.ID))
	})
}

func TestListWatchlist(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	category := seedCategory(t, s, "Antiques")
	watched := seedListing(t, s, alice, category, 10)
	seedListing(t, s, alice, category, 20)

	_, err := s.ListWatchlist(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, s.ToggleWatchlist(ctx, bob.ID, watched.ID, WatchAdd))

	listings, err := s.ListWatchlist(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, watched.ID, listings[0].ID)
}
