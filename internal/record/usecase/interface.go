// Package usecase implements the Level-1 client flow: records are validated and sealed
// before they reach the Transport, and opened one by one when they come back.
package usecase

import (
	"context"

	recordDomain "github.com/allisson/recordseal/internal/record/domain"
)

// Transport moves Level-1 envelopes to and from the Level-2 service. It never sees plaintext.
type Transport interface {
	// Create stores a new envelope and returns the record id.
	Create(ctx context.Context, payload string) (string, error)

	// Get fetches one stored record.
	Get(ctx context.Context, id string) (recordDomain.StoredRecord, error)

	// List fetches a page of stored records.
	List(ctx context.Context, offset, limit int) ([]recordDomain.StoredRecord, error)

	// Update replaces the envelope of an existing record.
	Update(ctx context.Context, id, payload string) error

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}

// RecordUseCase defines the client-side record operations.
type RecordUseCase interface {
	// Seal validates rec and returns its Level-1 envelope.
	Seal(ctx context.Context, rec recordDomain.StudentRecord) (string, error)

	// Open decrypts and decodes a single envelope. Errors are returned to the caller.
	Open(ctx context.Context, envelope string) (recordDomain.StudentRecord, error)

	// OpenBatch opens every stored record independently. It never fails as a whole: a
	// record that cannot be opened becomes a placeholder.
	OpenBatch(ctx context.Context, stored []recordDomain.StoredRecord) []recordDomain.OpenedRecord

	// Add seals rec and stores it.
	Add(ctx context.Context, rec recordDomain.StudentRecord) (string, error)

	// Get fetches and opens one record.
	Get(ctx context.Context, id string) (recordDomain.OpenedRecord, error)

	// List fetches and opens a page of records.
	List(ctx context.Context, offset, limit int) ([]recordDomain.OpenedRecord, error)

	// Update seals rec and replaces the stored record.
	Update(ctx context.Context, id string, rec recordDomain.StudentRecord) error

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}
