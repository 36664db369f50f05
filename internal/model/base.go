package model

import "github.com/google/uuid"

// NewID returns a fresh stable identifier for a record.
func NewID() string {
	return uuid.NewString()
}
