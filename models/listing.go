package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing represents an auction item posted by a user.
// CurrentBidID denormalizes the highest accepted bid; it is updated in the
// same transaction that inserts the bid, so "most recent" and "highest"
// always coincide.
type Listing struct {
	gorm.Model

	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;<-:create"`
	CategoryID    uuid.UUID  `gorm:"type:uuid;not null;<-:create"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Description   string     `gorm:"type:text;not null"`
	StartingPrice uint32     `gorm:"type:integer;not null;<-:create"`
	ImageURL      string     `gorm:"type:text"`
	Closed        bool       `gorm:"not null;default:false"`
	CurrentBidID  *uuid.UUID `gorm:"type:uuid"`

	User       User
	Category   Category
	CurrentBid *Bid `gorm:"foreignKey:CurrentBidID"`
	Bids       []Bid
	Comments   []Comment
	Watchers   []*User `gorm:"many2many:watchlist_entries"`
}

func (l *Listing) BeforeCreate(*gorm.DB) error {
	if l.ID != uuid.Nil {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}
