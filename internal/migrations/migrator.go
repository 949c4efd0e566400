package migrations

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dormmatch/internal/domain"
)

// CredentialsMigrator upgrades credential files written in an older layout.
type CredentialsMigrator interface {
	Migrate(ctx context.Context, data []byte, currentVersion string) (map[string]string, bool, error)
	FixPermissionsPostMigration(ctx context.Context, path string, fs domain.FileSystemAdapter) error
}

// Migrator implements credential file migration logic.
type Migrator struct {
	logger *slog.Logger
}

// NewMigrator creates a new credentials migrator.
func NewMigrator(logger *slog.Logger) *Migrator {
	return &Migrator{
		logger: logger,
	}
}

// Migrate converts data to the entries of the current layout.
// Returns: entries, wasMigrated, error.
func (m *Migrator) Migrate(
	ctx context.Context,
	data []byte,
	currentVersion string,
) (map[string]string, bool, error) {
	version, err := m.detectVersion(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect credentials version: %w", err)
	}

	m.logger.DebugContext(ctx, "Detected credentials version", "version", version, "current", currentVersion)

	if version == "" || version == currentVersion {
		return nil, false, nil
	}

	switch version {
	case legacyVersion:
		return m.migrateFromLegacy(ctx, data)
	default:
		return nil, false, fmt.Errorf("unsupported credentials version: %s", version)
	}
}

// detectVersion reports legacyVersion for a bare token or a mapping with
// neither version nor entries, otherwise the version field. An empty
// document has no version.
func (m *Migrator) detectVersion(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	if len(doc.Content) == 0 {
		return "", nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.ScalarNode:
		if root.ShortTag() == "!!null" {
			return "", nil
		}
		return legacyVersion, nil
	case yaml.MappingNode:
		var versionCheck struct {
			Version string         `yaml:"version"`
			Entries map[string]any `yaml:"entries"`
		}
		if err := root.Decode(&versionCheck); err != nil {
			return "", err
		}
		if versionCheck.Version == "" && versionCheck.Entries == nil {
			return legacyVersion, nil
		}
		return versionCheck.Version, nil
	default:
		return "", fmt.Errorf("unexpected credentials document of kind %d", root.Kind)
	}
}

func (m *Migrator) migrateFromLegacy(ctx context.Context, data []byte) (map[string]string, bool, error) {
	entries, err := migrateFromLegacy(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to migrate legacy credentials: %w", err)
	}

	m.logger.InfoContext(ctx, "Migrated credentials from legacy layout", "entries", len(entries))
	return entries, true, nil
}

// FixPermissionsPostMigration restricts the credential file and its
// directory to the owner after a legacy file has been rewritten.
func (m *Migrator) FixPermissionsPostMigration(
	ctx context.Context,
	path string,
	fs domain.FileSystemAdapter,
) error {
	const (
		dirPermissions  = 0o700
		filePermissions = 0o600
	)

	if err := fs.Chmod(path, filePermissions); err != nil {
		m.logger.WarnContext(ctx, "Failed to fix credentials file permissions",
			"path", path, "error", err)
		return fmt.Errorf("failed to fix credentials file permissions: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.Chmod(dir, dirPermissions); err != nil {
		m.logger.WarnContext(ctx, "Failed to fix credentials directory permissions",
			"path", dir, "error", err)
		return fmt.Errorf("failed to fix credentials directory permissions: %w", err)
	}

	m.logger.InfoContext(ctx, "Fixed file and directory permissions post-migration",
		"credentials_file", path, "credentials_dir", dir)
	return nil
}
