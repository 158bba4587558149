package auction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/models"
)

func TestListActive(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	category := seedCategory(t, s, "Antiques")

	open := seedListing(t, s, alice, category, 10)
	closed := seedListing(t, s, alice, category, 20)
	require.NoError(t, s.CloseListing(ctx, alice.ID, closed.ID))

	listings, err := s.ListActive(ctx)
	require.NoError(t, err)

	ids := lo.Map(listings, func(l models.Listing, _ int) uuid.UUID { return l.ID })
	assert.Contains(t, ids, open.ID)
	assert.NotContains(t, ids, closed.ID)
}

func TestListByCategory(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	antiques := seedCategory(t, s, "Antiques")
	books := seedCategory(t, s, "Books")

	inCategory := seedListing(t, s, alice, antiques, 10)
	closedInCategory := seedListing(t, s, alice, antiques, 20)
	require.NoError(t, s.CloseListing(ctx, alice.ID, closedInCategory.ID))
	elsewhere := seedListing(t, s, alice, books, 30)

	category, listings, err := s.ListByCategory(ctx, antiques.ID)
	require.NoError(t, err)
	assert.Equal(t, "Antiques", category.Name)

	// Closed listings stay visible on category pages.
	ids := lo.Map(listings, func(l models.Listing, _ int) uuid.UUID { return l.ID })
	assert.ElementsMatch(t, []uuid.UUID{inCategory.ID, closedInCategory.ID}, ids)
	assert.NotContains(t, ids, elsewhere.ID)

	_, _, err = s.ListByCategory(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateListing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	category := seedCategory(t, s, "Antiques")

	tests := []struct {
		name       string
		caller     uuid.UUID
		input      CreateListingInput
		wantErr    error
		wantFields []string
	}{
		{
			name:   "valid listing",
			caller: alice.ID,
			input: CreateListingInput{
				Title: "Brass lamp", Description: "Slightly dented.",
				StartingPrice: "50", CategoryID: category.ID.String(),
			},
		},
		{
			name:    "anonymous caller",
			caller:  uuid.Nil,
			input:   CreateListingInput{Title: "x", Description: "y", StartingPrice: "1"},
			wantErr: ErrUnauthorized,
		},
		{
			name:       "missing fields",
			caller:     alice.ID,
			input:      CreateListingInput{StartingPrice: "not-a-number"},
			wantFields: []string{"title", "description", "starting"},
		},
		{
			name:   "unknown category",
			caller: alice.ID,
			input: CreateListingInput{
				Title: "Brass lamp", Description: "Slightly dented.",
				StartingPrice: "50", CategoryID: uuid.NewString(),
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := s.CreateListing(ctx, tt.caller, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if len(tt.wantFields) > 0 {
				ve := AsValidation(err)
				require.NotNil(t, ve)
				fields := lo.Map(ve.Fields, func(f FieldError, _ int) string { return f.Field })
				assert.ElementsMatch(t, tt.wantFields, fields)
				return
			}
			require.NoError(t, err)
			assert.False(t, listing.Closed)
			assert.Equal(t, alice.ID, listing.UserID)
			assert.Equal(t, category.ID, listing.CategoryID)
			assert.EqualValues(t, 50, listing.StartingPrice)
		})
	}
}

func TestCreateListingNewCategoryOverridesDropdown(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	existing := seedCategory(t, s, "Antiques")

	// Supplying a new category name always creates a fresh record, even when
	// it duplicates an existing name and a dropdown pick was also sent.
	listing, err := s.CreateListing(ctx, alice.ID, CreateListingInput{
		Title: "Brass lamp", Description: "Slightly dented.", StartingPrice: "50",
		CategoryID:      existing.ID.String(),
		NewCategoryName: "Antiques",
	})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, listing.CategoryID)

	var count int64
	require.NoError(t, s.db.Model(&models.Category{}).Where("name = ?", "Antiques").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateListingSanitizesDescription(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice")
	category := seedCategory(t, s, "Antiques")

	listing, err := s.CreateListing(context.Background(), alice.ID, CreateListingInput{
		Title:         "Brass lamp",
		Description:   `shiny<script>alert("x")</script>`,
		StartingPrice: "50",
		CategoryID:    category.ID.String(),
	})
	require.NoError(t, err)
	assert.NotContains(t, listing.Description, "<script>")
	assert.Contains(t, listing.Description, "shiny")
}

func TestCloseListing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	category := seedCategory(t, s, "Antiques")
	listing := seedListing(t, s, alice, category, 10)

	// Non-owner and anonymous attempts are rejected.
	assert.ErrorIs(t, s.CloseListing(ctx, bob.ID, listing.ID), ErrUnauthorized)
	assert.ErrorIs(t, s.CloseListing(ctx, uuid.Nil, listing.ID), ErrUnauthorized)
	assert.ErrorIs(t, s.CloseListing(ctx, alice.ID, uuid.New()), ErrNotFound)

	// Owner closes; a second close is a no-op, and the flag never flips back.
	require.NoError(t, s.CloseListing(ctx, alice.ID, listing.ID))
	require.NoError(t, s.CloseListing(ctx, alice.ID, listing.ID))

	var got models.Listing
	require.NoError(t, s.db.First(&got, "id = ?", listing.ID).Error)
	assert.True(t, got.Closed)
}
