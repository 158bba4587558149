// Package models holds the persistent entities of the auction marketplace.
package models

import "github.com/google/uuid"

// newID generates a time-ordered primary key. v7 keeps insertion order
// roughly monotonic, which keeps default listing order stable.
func newID() (uuid.UUID, error) {
	return uuid.NewV7()
}
