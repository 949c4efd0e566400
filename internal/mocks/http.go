package mocks

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"

	"dormmatch/internal/domain"
)

// MockHTTPAdapter is a mock implementation of domain.HTTPAdapter.
type MockHTTPAdapter struct {
	mock.Mock
}

// NewMockHTTPAdapter creates a mock and registers expectation checks on cleanup.
func NewMockHTTPAdapter(t *testing.T) *MockHTTPAdapter {
	m := &MockHTTPAdapter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHTTPAdapter) Do(ctx context.Context, req domain.HTTPRequest) (*http.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

var _ domain.HTTPAdapter = (*MockHTTPAdapter)(nil)
