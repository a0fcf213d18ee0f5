package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/recordseal/internal/metrics"
	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// studentUseCaseWithMetrics decorates StudentUseCase with metrics instrumentation.
type studentUseCaseWithMetrics struct {
	next    StudentUseCase
	metrics metrics.BusinessMetrics
}

// NewStudentUseCaseWithMetrics wraps a StudentUseCase with metrics recording.
func NewStudentUseCaseWithMetrics(useCase StudentUseCase, m metrics.BusinessMetrics) StudentUseCase {
	return &studentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *studentUseCaseWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "students", operation, start, err)
}

// Create records metrics for student creation.
func (s *studentUseCaseWithMetrics) Create(ctx context.Context, payload string) (*studentDomain.Student, error) {
	start := time.Now()
	student, err := s.next.Create(ctx, payload)
	s.observe(ctx, "student_create", start, err)
	return student, err
}

// Get records metrics for student retrieval. A student returned as unavailable counts as
// "unavailable".
func (s *studentUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	start := time.Now()
	student, err := s.next.Get(ctx, id)
	s.observe(ctx, "student_get", start, err)
	if student != nil && student.Unavailable {
		s.metrics.RecordOperation(ctx, "students", "student_unwrap", "unavailable")
	}
	return student, err
}

// List records metrics for student listing.
func (s *studentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*studentDomain.Student, error) {
	start := time.Now()
	students, err := s.next.List(ctx, offset, limit)
	s.observe(ctx, "student_list", start, err)
	for _, student := range students {
		if student.Unavailable {
			s.metrics.RecordOperation(ctx, "students", "student_unwrap", "unavailable")
		}
	}
	return students, err
}

// Update records metrics for student updates.
func (s *studentUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	payload string,
) (*studentDomain.Student, error) {
	start := time.Now()
	student, err := s.next.Update(ctx, id, payload)
	s.observe(ctx, "student_update", start, err)
	return student, err
}

// Delete records metrics for student deletion.
func (s *studentUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.observe(ctx, "student_delete", start, err)
	return err
}
