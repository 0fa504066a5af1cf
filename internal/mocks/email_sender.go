package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock for the verification email sender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationCode(ctx context.Context, email string, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}
