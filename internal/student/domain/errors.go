package domain

import (
	"github.com/allisson/recordseal/internal/errors"
)

// Student-specific error definitions.
var (
	// ErrStudentNotFound indicates the student record does not exist or was deleted.
	ErrStudentNotFound = errors.Wrap(errors.ErrNotFound, "student not found")

	// ErrEmptyPayload indicates a write without a Level-1 envelope.
	ErrEmptyPayload = errors.Wrap(errors.ErrInvalidInput, "payload is required")
)
