package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"narrabridge/internal/domain"
)

// MockDocumentClient is a mock implementation of port.DocumentClient.
type MockDocumentClient struct {
	mock.Mock
}

func (m *MockDocumentClient) Send(ctx context.Context, baseURL string, payload *domain.Payload) (json.RawMessage, error) {
	args := m.Called(ctx, baseURL, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
