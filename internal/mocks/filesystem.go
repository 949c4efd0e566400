package mocks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"dormmatch/internal/domain"
)

// MockFileSystemAdapter is a mock implementation of domain.FileSystemAdapter.
type MockFileSystemAdapter struct {
	mock.Mock
}

// NewMockFileSystemAdapter creates a mock and registers expectation checks on cleanup.
func NewMockFileSystemAdapter(t *testing.T) *MockFileSystemAdapter {
	m := &MockFileSystemAdapter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileSystemAdapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return m.Called(path, data, perm).Error(0)
}

func (m *MockFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) Remove(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockFileSystemAdapter) Stat(path string) (os.FileInfo, error) {
	args := m.Called(path)
	info, _ := args.Get(0).(os.FileInfo)
	return info, args.Error(1)
}

func (m *MockFileSystemAdapter) Chmod(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) UserHomeDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

var _ domain.FileSystemAdapter = (*MockFileSystemAdapter)(nil)
