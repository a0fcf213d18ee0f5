// Package mocks provides mock implementations of the student use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// MockStudentRepository is a mock implementation of usecase.StudentRepository.
type MockStudentRepository struct {
	mock.Mock
}

// NewMockStudentRepository creates a MockStudentRepository that asserts its expectations on cleanup.
func NewMockStudentRepository(t *testing.T) *MockStudentRepository {
	m := &MockStudentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStudentRepository) Create(ctx context.Context, student *studentDomain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studentDomain.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, offset, limit int) ([]*studentDomain.Student, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studentDomain.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *studentDomain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSealer is a mock implementation of usecase.Sealer.
type MockSealer struct {
	mock.Mock
}

// NewMockSealer creates a MockSealer that asserts its expectations on cleanup.
func NewMockSealer(t *testing.T) *MockSealer {
	m := &MockSealer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSealer) Seal(ctx context.Context, data []byte) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSealer) Open(ctx context.Context, data []byte) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockStudentUseCase is a mock implementation of usecase.StudentUseCase.
type MockStudentUseCase struct {
	mock.Mock
}

// NewMockStudentUseCase creates a MockStudentUseCase that asserts its expectations on cleanup.
func NewMockStudentUseCase(t *testing.T) *MockStudentUseCase {
	m := &MockStudentUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStudentUseCase) Create(ctx context.Context, payload string) (*studentDomain.Student, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studentDomain.Student), args.Error(1)
}

func (m *MockStudentUseCase) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studentDomain.Student), args.Error(1)
}

func (m *MockStudentUseCase) List(ctx context.Context, offset, limit int) ([]*studentDomain.Student, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studentDomain.Student), args.Error(1)
}

func (m *MockStudentUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	payload string,
) (*studentDomain.Student, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studentDomain.Student), args.Error(1)
}

func (m *MockStudentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
