// Package usecase implements the Level-2 student store: envelopes received from clients are
// wrapped by the Level-2 layers before they are persisted and unwrapped when read back.
package usecase

import (
	"context"

	"github.com/google/uuid"

	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// StudentRepository persists students.
type StudentRepository interface {
	Create(ctx context.Context, student *studentDomain.Student) error
	Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error)
	List(ctx context.Context, offset, limit int) ([]*studentDomain.Student, error)
	Update(ctx context.Context, student *studentDomain.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Sealer applies and removes the Level-2 layers. *layering.Pipeline implements it.
type Sealer interface {
	Seal(ctx context.Context, data []byte) ([]byte, error)
	Open(ctx context.Context, data []byte) ([]byte, error)
}

// StudentUseCase defines the student store operations.
type StudentUseCase interface {
	// Create wraps payload and stores it as a new student.
	Create(ctx context.Context, payload string) (*studentDomain.Student, error)

	// Get returns a student with its Level-1 payload. A student whose Level-2 layer cannot
	// be removed is returned with Unavailable set instead of an error.
	Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error)

	// List returns a page of students, each resolved like Get.
	List(ctx context.Context, offset, limit int) ([]*studentDomain.Student, error)

	// Update replaces the payload of an existing student.
	Update(ctx context.Context, id uuid.UUID, payload string) (*studentDomain.Student, error)

	// Delete soft deletes a student.
	Delete(ctx context.Context, id uuid.UUID) error
}
