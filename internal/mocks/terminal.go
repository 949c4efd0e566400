package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"dormmatch/internal/domain"
)

// MockPasswordReader is a mock implementation of domain.PasswordReader.
type MockPasswordReader struct {
	mock.Mock
}

// NewMockPasswordReader creates a mock and registers expectation checks on cleanup.
func NewMockPasswordReader(t *testing.T) *MockPasswordReader {
	m := &MockPasswordReader{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordReader) ReadPassword(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordReader) IsInteractive() bool {
	return m.Called().Bool(0)
}

var _ domain.PasswordReader = (*MockPasswordReader)(nil)
