// Package auction implements the marketplace's domain operations: browsing,
// listing creation, bidding, commenting, watchlists and auction closing.
// Every operation takes the caller explicitly; uuid.Nil means anonymous.
package auction

import (
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type Service struct {
	db          *gorm.DB
	htmlChecker *bluemonday.Policy
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:          db,
		htmlChecker: bluemonday.UGCPolicy(),
	}
}
