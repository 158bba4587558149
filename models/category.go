package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a label grouping listings.
// Names are deliberately not unique: a user supplying a "new category" at
// listing creation always gets a fresh record, even if the name collides.
type Category struct {
	gorm.Model

	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(64);not null;<-:create"`

	Listings []Listing
}

func (c *Category) BeforeCreate(*gorm.DB) error {
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
