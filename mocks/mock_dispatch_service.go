package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"narrabridge/internal/domain"
	"narrabridge/internal/service"
)

// MockDispatchService is a mock implementation of service.DispatchService.
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Execute(ctx context.Context, req service.BatchRequest) (*service.BatchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResponse), args.Error(1)
}

func (m *MockDispatchService) GetRun(ctx context.Context, id uuid.UUID) (*domain.DispatchRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchRun), args.Error(1)
}

func (m *MockDispatchService) ListRuns(ctx context.Context, offset, limit int) ([]domain.DispatchRun, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DispatchRun), args.Int(1), args.Error(2)
}
