// Package credentials persists the access token issued by the auth service.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"dormmatch/internal/domain"
	"dormmatch/internal/migrations"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
	fileVersion     = "1"
	tokenKey        = "token"
)

// File is the on-disk layout of the credential store.
type File struct {
	Version string            `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// Repository is a file-backed domain.CredentialStore. Every read goes to
// disk so that a token written by another process is picked up immediately.
type Repository struct {
	mu       sync.RWMutex
	fs       domain.FileSystemAdapter
	path     string
	logger   *slog.Logger
	migrator migrations.CredentialsMigrator
}

// NewRepository creates the store directory if needed and tightens the
// permissions of an existing credential file.
func NewRepository(
	fs domain.FileSystemAdapter,
	path string,
	logger *slog.Logger,
) (*Repository, error) {
	if err := fs.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	repo := &Repository{
		fs:       fs,
		path:     path,
		logger:   logger,
		migrator: migrations.NewMigrator(logger),
	}
	repo.fixPermissions()

	return repo, nil
}

// Path returns the location of the credential file.
func (r *Repository) Path() string {
	return r.path
}

// Token returns the stored token, or an empty string when none is stored.
func (r *Repository) Token(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, _, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	return file.Entries[tokenKey], nil
}

// SetToken stores token, replacing any previous one.
func (r *Repository) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return r.ClearToken(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, migrated, err := r.load(ctx)
	if err != nil {
		return err
	}
	file.Entries[tokenKey] = token

	if err := r.save(ctx, file); err != nil {
		return err
	}
	if migrated {
		if permErr := r.migrator.FixPermissionsPostMigration(ctx, r.path, r.fs); permErr != nil {
			r.logger.WarnContext(ctx, "Failed to fix permissions during migration", "error", permErr)
		}
	}
	r.logger.DebugContext(ctx, "Stored access token", "path", r.path)
	return nil
}

// ClearToken removes the stored token. The file itself is deleted once it
// holds no entries.
func (r *Repository) ClearToken(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := file.Entries[tokenKey]; !ok {
		return nil
	}
	delete(file.Entries, tokenKey)

	if len(file.Entries) > 0 {
		return r.save(ctx, file)
	}

	if err := r.fs.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	r.logger.DebugContext(ctx, "Cleared access token", "path", r.path)
	return nil
}

// load reads the credential file. Files in a legacy layout are converted in
// memory and rewritten in the current layout on the next save.
func (r *Repository) load(ctx context.Context) (*File, bool, error) {
	file := &File{Version: fileVersion, Entries: map[string]string{}}

	data, err := r.fs.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.DebugContext(ctx, "Credentials file does not exist", "path", r.path)
			return file, false, nil
		}
		return nil, false, fmt.Errorf("failed to read credentials file: %w", err)
	}

	entries, migrated, migrationErr := r.migrator.Migrate(ctx, data, fileVersion)
	if migrationErr != nil {
		r.logger.WarnContext(ctx, "Migration failed, attempting direct load", "error", migrationErr)
	} else if migrated {
		file.Entries = entries
		r.logger.InfoContext(ctx, "Credentials migrated and loaded", "path", r.path, "entries", len(entries))
		return file, true, nil
	}

	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}
	if file.Entries == nil {
		file.Entries = map[string]string{}
	}
	return file, false, nil
}

func (r *Repository) save(ctx context.Context, file *File) error {
	file.Version = fileVersion

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := r.fs.WriteFile(r.path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	r.logger.DebugContext(ctx, "Credentials saved", "path", r.path)
	return nil
}

// fixPermissions resets a credential file that is readable by group or
// others back to owner-only access.
func (r *Repository) fixPermissions() {
	info, err := r.fs.Stat(r.path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o077 == 0 {
		return
	}

	if err := r.fs.Chmod(r.path, filePermissions); err != nil {
		r.logger.Warn("Failed to restrict credentials file permissions", "path", r.path, "error", err)
		return
	}
	r.logger.Info("Restricted credentials file permissions",
		"path", r.path,
		"previous", info.Mode().Perm().String())
}

var _ domain.CredentialStore = (*Repository)(nil)
