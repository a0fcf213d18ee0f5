// Package mocks provides mock implementations of the database interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager that asserts its expectations on cleanup.
func NewMockTxManager(t *testing.T) *MockTxManager {
	m := &MockTxManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx records the call and, unless an error is configured, runs fn with ctx.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
