package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image records a file uploaded to the blob store, keyed by uploader so
// upload rate limits can be enforced per user.
type Image struct {
	gorm.Model

	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null;<-:create"`
	URL        string    `gorm:"type:text;not null;<-:create"`

	Uploader *User `gorm:"foreignKey:UploaderID"`
}

func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID != uuid.Nil {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	i.ID = id
	return nil
}
