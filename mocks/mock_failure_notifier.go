package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"narrabridge/internal/domain"
)

// MockFailureNotifier is a mock implementation of port.FailureNotifier.
type MockFailureNotifier struct {
	mock.Mock
}

func (m *MockFailureNotifier) NotifyRunFailed(ctx context.Context, run *domain.DispatchRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
