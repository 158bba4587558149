package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid records one offer on a listing. Bids are immutable once created.
type Bid struct {
	gorm.Model

	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount    uint32    `gorm:"type:integer;not null;<-:create"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;<-:create"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;<-:create"`

	User    User
	Listing Listing
}

func (b *Bid) BeforeCreate(*gorm.DB) error {
	if b.ID != uuid.Nil {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}
