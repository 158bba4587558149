package auction

import (
	"context"
	"fmt"

	"gavel/models"
)

// ListCategories returns all categories, duplicates included, for the
// directory page and the create-listing dropdown.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "ListCategories"
	var categories []models.Category
	if result := s.db.WithContext(ctx).Find(&categories); result.Error != nil {
		return nil, fmt.Errorf("[%s] Fail to list categories, err=%w", op, result.Error)
	}
	return categories, nil
}
