// Package mocks provides mock implementations of the record use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	recordDomain "github.com/allisson/recordseal/internal/record/domain"
)

// MockTransport is a mock implementation of usecase.Transport.
type MockTransport struct {
	mock.Mock
}

// NewMockTransport creates a MockTransport that asserts its expectations on cleanup.
func NewMockTransport(t *testing.T) *MockTransport {
	m := &MockTransport{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransport) Create(ctx context.Context, payload string) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) Get(ctx context.Context, id string) (recordDomain.StoredRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(recordDomain.StoredRecord), args.Error(1)
}

func (m *MockTransport) List(ctx context.Context, offset, limit int) ([]recordDomain.StoredRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recordDomain.StoredRecord), args.Error(1)
}

func (m *MockTransport) Update(ctx context.Context, id, payload string) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockTransport) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecordUseCase is a mock implementation of usecase.RecordUseCase.
type MockRecordUseCase struct {
	mock.Mock
}

// NewMockRecordUseCase creates a MockRecordUseCase that asserts its expectations on cleanup.
func NewMockRecordUseCase(t *testing.T) *MockRecordUseCase {
	m := &MockRecordUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecordUseCase) Seal(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *MockRecordUseCase) Open(ctx context.Context, envelope string) (recordDomain.StudentRecord, error) {
	args := m.Called(ctx, envelope)
	return args.Get(0).(recordDomain.StudentRecord), args.Error(1)
}

func (m *MockRecordUseCase) OpenBatch(
	ctx context.Context,
	stored []recordDomain.StoredRecord,
) []recordDomain.OpenedRecord {
	args := m.Called(ctx, stored)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]recordDomain.OpenedRecord)
}

func (m *MockRecordUseCase) Add(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *MockRecordUseCase) Get(ctx context.Context, id string) (recordDomain.OpenedRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(recordDomain.OpenedRecord), args.Error(1)
}

func (m *MockRecordUseCase) List(ctx context.Context, offset, limit int) ([]recordDomain.OpenedRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recordDomain.OpenedRecord), args.Error(1)
}

func (m *MockRecordUseCase) Update(ctx context.Context, id string, rec recordDomain.StudentRecord) error {
	args := m.Called(ctx, id, rec)
	return args.Error(0)
}

func (m *MockRecordUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
