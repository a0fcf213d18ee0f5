// Package domain defines the student record as held by the Level-2 store. The store only
// ever sees the client's Level-1 envelope, which it wraps again before persisting.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student is a stored record.
type Student struct {
	// ID is the opaque record identifier (UUIDv7).
	ID uuid.UUID
	// Ciphertext is the Level-2 wrapped envelope as persisted. Nil when no data exists.
	Ciphertext []byte
	// Payload is the Level-1 envelope after Level-2 unwrapping. Memory only.
	Payload string `json:"-"`
	// Unavailable is set when the Level-2 layer could not be removed on read.
	Unavailable bool `json:"-"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// DeletedAt marks soft-deleted records (nil if active).
	DeletedAt *time.Time
}

// HasData reports whether a ciphertext is stored for the record.
func (s *Student) HasData() bool {
	return len(s.Ciphertext) > 0
}
