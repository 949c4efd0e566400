package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// Adapter provides file system operations.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces path atomically: data goes to a temporary file in the
// same directory which is then renamed over the target. perm is applied
// before the rename so the content is never visible with wider access.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	return os.Rename(tmpName, path)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove deletes a file.
func (a *Adapter) Remove(path string) error {
	return os.Remove(path)
}

// Stat returns file info.
func (a *Adapter) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Chmod changes the file permissions.
func (a *Adapter) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// UserHomeDir returns the user's home directory.
func (a *Adapter) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
