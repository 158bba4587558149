package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered member of the marketplace.
// The password credential is stored as a bcrypt hash, never in clear.
type User struct {
	gorm.Model

	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex:idx_users_username,where:deleted_at IS NULL;not null;<-:create"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash []byte    `gorm:"type:bytea;not null"`
	FirstName    string    `gorm:"type:varchar(255)"`
	LastName     string    `gorm:"type:varchar(255)"`

	Listings  []Listing
	Bids      []Bid
	Comments  []Comment
	Watchlist []*Listing `gorm:"many2many:watchlist_entries"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID != uuid.Nil {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// DisplayName is "First Last" when names are set, otherwise the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}
