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

// ListActive returns all listings still accepting bids, for the homepage.
// Closed listings are excluded but remain individually viewable.
func (s *Service) ListActive(ctx context.Context) ([]models.Listing, error) {
	const op = "ListActive"
	var listings []models.Listing
	result := s.db.WithContext(ctx).
		Preload("Category").
		Preload("CurrentBid").
		Where("closed = ?", false).
		Find(&listings)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to list active listings, err=%w", op, result.Error)
	}
	return listings, nil
}

// ListByCategory returns every listing in the category, open or closed.
func (s *Service) ListByCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, []models.Listing, error) {
	const op = "ListByCategory"
	var category models.Category
	result := s.db.WithContext(ctx).First(&category, "id = ?", categoryID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	if result.Error != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to find category, err=%w", op, result.Error)
	}
	var listings []models.Listing
	result = s.db.WithContext(ctx).
		Preload("Category").
		Preload("CurrentBid").
		Where("category_id = ?", categoryID).
		Find(&listings)
	if result.Error != nil {
		return nil, nil, fmt.Errorf("[%s] Fail to list listings by category, err=%w", op, result.Error)
	}
	return &category, listings, nil
}

// ListWatchlist returns the caller's watched listings.
func (s *Service) ListWatchlist(ctx context.Context, caller uuid.UUID) ([]models.Listing, error) {
	const op = "ListWatchlist"
	if caller == uuid.Nil {
		return nil, fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	var listings []models.Listing
	result := s.db.WithContext(ctx).
		Preload("Category").
		Preload("CurrentBid").
		Joins("JOIN watchlist_entries ON watchlist_entries.listing_id = listings.id").
		Where("watchlist_entries.user_id = ?", caller).
		Find(&listings)
	if result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to list watchlist, err=%w", op, result.Error)
	}
	return listings, nil
}

type CreateListingInput struct {
	Title           string
	Description     string
	StartingPrice   string // raw form value, validated here
	ImageURL        string
	CategoryID      string
	NewCategoryName string
}

func (in CreateListingInput) validate() (uint32, error) {
	var fields []FieldError
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "Title is required."})
	}
	if strings.TrimSpace(in.Description) == "" {
		fields = append(fields, FieldError{Field: "description", Message: "Description is required."})
	}
	price, err := strconv.ParseUint(strings.TrimSpace(in.StartingPrice), 10, 32)
	if err != nil {
		fields = append(fields, FieldError{Field: "starting", Message: "Starting price must be a non-negative integer."})
	}
	if len(fields) > 0 {
		return 0, &ValidationError{Message: "Missing or invalid fields.", Fields: fields}
	}
	return uint32(price), nil
}

// CreateListing persists a new open listing owned by the caller.
//
// Category policy: a non-empty NewCategoryName always creates a fresh
// category (duplicates allowed) and overrides CategoryID; otherwise
// CategoryID must resolve to an existing category. Category creation and
// listing creation commit in one transaction so a failed save never leaves
// an orphaned category behind.
func (s *Service) CreateListing(ctx context.Context, caller uuid.UUID, input CreateListingInput) (*models.Listing, error) {
	const op = "CreateListing"
	if caller == uuid.Nil {
		return nil, fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	price, err := input.validate()
	if err != nil {
		return nil, err
	}

	var listing models.Listing
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if name := strings.TrimSpace(input.NewCategoryName); name != "" {
			category = models.Category{Name: name}
			if result := tx.Create(&category); result.Error != nil {
				return fmt.Errorf("[%s] Fail to create category, err=%w", op, result.Error)
			}
		} else {
			categoryID, parseErr := uuid.Parse(strings.TrimSpace(input.CategoryID))
			if parseErr != nil {
				return fmt.Errorf("invalid category id %q: %w", input.CategoryID, ErrNotFound)
			}
			if result := tx.First(&category, "id = ?", categoryID); result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
				}
				return fmt.Errorf("[%s] Fail to find category, err=%w", op, result.Error)
			}
		}
		listing = models.Listing{
			UserID:        caller,
			CategoryID:    category.ID,
			Title:         strings.TrimSpace(input.Title),
			Description:   s.htmlChecker.Sanitize(input.Description),
			StartingPrice: price,
			ImageURL:      input.ImageURL,
			Closed:        false,
		}
		if result := tx.Create(&listing); result.Error != nil {
			return fmt.Errorf("[%s] Fail to create listing, err=%w", op, result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// CloseListing irreversibly flips a listing to closed. Only the owner may
// close; closing an already-closed listing is a no-op, not an error.
func (s *Service) CloseListing(ctx context.Context, caller, listingID uuid.UUID) error {
	const op = "CloseListing"
	if caller == uuid.Nil {
		return fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	var listing models.Listing
	result := s.db.WithContext(ctx).First(&listing, "id = ?", listingID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	if result.Error != nil {
		return fmt.Errorf("[%s] Fail to find listing, err=%w", op, result.Error)
	}
	if listing.UserID != caller {
		return fmt.Errorf("caller %s is not the owner of listing %s: %w", caller, listingID, ErrUnauthorized)
	}
	if listing.Closed {
		return nil
	}
	if result := s.db.WithContext(ctx).Model(&listing).Update("closed", true); result.Error != nil {
		return fmt.Errorf("[%s] Fail to close listing, err=%w", op, result.Error)
	}
	return nil
}
