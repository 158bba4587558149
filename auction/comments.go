package auction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gavel/models"
)

// AddComment attaches a free-text comment to a listing. Comments are
// immutable once stored.
func (s *Service) AddComment(ctx context.Context, caller, listingID uuid.UUID, text string) (*models.Comment, error) {
	const op = "AddComment"
	if caller == uuid.Nil {
		return nil, fmt.Errorf("anonymous caller: %w", ErrUnauthorized)
	}
	text = s.htmlChecker.Sanitize(text)
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{
			Message: "Comment text is required.",
			Fields:  []FieldError{{Field: "text", Message: "Comment text is required."}},
		}
	}
	var count int64
	if result := s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listingID).Count(&count); result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to find listing, err=%w", op, result.Error)
	}
	if count == 0 {
		return nil, fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	comment := models.Comment{
		Text:      text,
		UserID:    caller,
		ListingID: listingID,
	}
	if result := s.db.WithContext(ctx).Create(&comment); result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to create comment, err=%w", op, result.Error)
	}
	return &comment, nil
}
