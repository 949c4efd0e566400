package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"dormmatch/internal/domain"
)

// MockCredentialStore is a mock implementation of domain.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

// NewMockCredentialStore creates a mock and registers expectation checks on cleanup.
func NewMockCredentialStore(t *testing.T) *MockCredentialStore {
	m := &MockCredentialStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCredentialStore) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialStore) SetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialStore) ClearToken(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.CredentialStore = (*MockCredentialStore)(nil)
