package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/recordseal/internal/database"
	apperrors "github.com/allisson/recordseal/internal/errors"
	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// studentUseCase implements StudentUseCase.
type studentUseCase struct {
	txManager   database.TxManager
	studentRepo StudentRepository
	level2      Sealer
	logger      *slog.Logger
}

// NewStudentUseCase creates a new StudentUseCase.
func NewStudentUseCase(
	txManager database.TxManager,
	studentRepo StudentRepository,
	level2 Sealer,
	logger *slog.Logger,
) StudentUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &studentUseCase{
		txManager:   txManager,
		studentRepo: studentRepo,
		level2:      level2,
		logger:      logger,
	}
}

func (s *studentUseCase) seal(ctx context.Context, payload string) ([]byte, error) {
	if payload == "" {
		return nil, studentDomain.ErrEmptyPayload
	}
	ciphertext, err := s.level2.Seal(ctx, []byte(payload))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to apply level-2 encryption")
	}
	return ciphertext, nil
}

// open removes the Level-2 layers in place. Failures are logged and flagged on the student.
func (s *studentUseCase) open(ctx context.Context, student *studentDomain.Student) {
	if !student.HasData() {
		return
	}

	plaintext, err := s.level2.Open(ctx, student.Ciphertext)
	if err != nil {
		s.logger.Error("failed to remove level-2 encryption",
			slog.String("student_id", student.ID.String()),
			slog.Any("error", err),
		)
		student.Unavailable = true
		return
	}
	student.Payload = string(plaintext)
}

func (s *studentUseCase) Create(ctx context.Context, payload string) (*studentDomain.Student, error) {
	ciphertext, err := s.seal(ctx, payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	student := &studentDomain.Student{
		ID:         uuid.Must(uuid.NewV7()),
		Ciphertext: ciphertext,
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentUseCase) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	student, err := s.studentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.open(ctx, student)
	return student, nil
}

func (s *studentUseCase) List(ctx context.Context, offset, limit int) ([]*studentDomain.Student, error) {
	students, err := s.studentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		s.open(ctx, student)
	}
	return students, nil
}

func (s *studentUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	payload string,
) (*studentDomain.Student, error) {
	ciphertext, err := s.seal(ctx, payload)
	if err != nil {
		return nil, err
	}

	var student *studentDomain.Student
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.studentRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		existing.Ciphertext = ciphertext
		existing.Payload = payload
		existing.UpdatedAt = time.Now().UTC()

		if err := s.studentRepo.Update(ctx, existing); err != nil {
			return err
		}
		student = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return s.studentRepo.Delete(ctx, id)
}
