package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a free-text note left by a user on a listing.
// Comments are never edited or deleted in-app.
type Comment struct {
	gorm.Model

	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string    `gorm:"type:text;not null;<-:create"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;<-:create"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;<-:create"`

	User    User
	Listing Listing
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID != uuid.Nil {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}
