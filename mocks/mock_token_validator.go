package mocks

import (
	"github.com/stretchr/testify/mock"

	"narrabridge/internal/auth"
)

// MockTokenValidator is a mock implementation of auth.Validator.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) Validate(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}
