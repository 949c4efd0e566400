package migrations_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dormmatch/internal/migrations"
	"dormmatch/internal/mocks"
)

func TestMigrator_Migrate_BareToken(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	entries, migrated, err := migrator.Migrate(context.Background(), []byte("eyJhbGciOiJIUzI1NiJ9.e30.sig\n"), "1")

	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, map[string]string{"token": "eyJhbGciOiJIUzI1NiJ9.e30.sig"}, entries)
}

func TestMigrator_Migrate_UnversionedMapping(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	entries, migrated, err := migrator.Migrate(context.Background(), []byte("token: t1\n"), "1")

	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, map[string]string{"token": "t1"}, entries)
}

func TestMigrator_Migrate_UnversionedMappingWithoutToken(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	entries, migrated, err := migrator.Migrate(context.Background(), []byte("user: someone\n"), "1")

	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Empty(t, entries)
}

func TestMigrator_Migrate_CurrentVersion(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	data := "version: \"1\"\nentries:\n  token: t1\n"
	entries, migrated, err := migrator.Migrate(context.Background(), []byte(data), "1")

	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Nil(t, entries)
}

func TestMigrator_Migrate_EmptyFile(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	for _, data := range []string{"", "  \n", "~\n"} {
		entries, migrated, err := migrator.Migrate(context.Background(), []byte(data), "1")

		require.NoError(t, err, "data %q", data)
		assert.False(t, migrated)
		assert.Nil(t, entries)
	}
}

func TestMigrator_Migrate_UnversionedEntries(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	entries, migrated, err := migrator.Migrate(context.Background(), []byte("entries:\n  token: t1\n"), "1")

	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Nil(t, entries)
}

func TestMigrator_Migrate_UnsupportedVersion(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	_, migrated, err := migrator.Migrate(context.Background(), []byte("version: \"9\"\n"), "1")

	require.Error(t, err)
	assert.False(t, migrated)
	assert.Equal(t, "unsupported credentials version: 9", err.Error())
}

func TestMigrator_Migrate_InvalidYAML(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	_, _, err := migrator.Migrate(context.Background(), []byte("token: [unterminated"), "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to detect credentials version")
}

func TestMigrator_Migrate_SequenceDocument(t *testing.T) {
	migrator := migrations.NewMigrator(slog.Default())

	_, _, err := migrator.Migrate(context.Background(), []byte("- a\n- b\n"), "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected credentials document")
}

func TestMigrator_FixPermissionsPostMigration(t *testing.T) {
	fs := mocks.NewMockFileSystemAdapter(t)
	fs.On("Chmod", "/home/student/.config/dormmatch/credentials.yaml", os.FileMode(0o600)).Return(nil)
	fs.On("Chmod", "/home/student/.config/dormmatch", os.FileMode(0o700)).Return(nil)

	err := migrations.NewMigrator(slog.Default()).FixPermissionsPostMigration(
		context.Background(), "/home/student/.config/dormmatch/credentials.yaml", fs)

	require.NoError(t, err)
}

func TestMigrator_FixPermissionsPostMigration_FileError(t *testing.T) {
	fs := mocks.NewMockFileSystemAdapter(t)
	fs.On("Chmod", "/tmp/credentials.yaml", os.FileMode(0o600)).Return(errors.New("read-only file system"))

	err := migrations.NewMigrator(slog.Default()).FixPermissionsPostMigration(
		context.Background(), "/tmp/credentials.yaml", fs)

	require.Error(t, err)
	assert.Equal(t, "failed to fix credentials file permissions: read-only file system", err.Error())
}

func TestMigrator_FixPermissionsPostMigration_DirectoryError(t *testing.T) {
	fs := mocks.NewMockFileSystemAdapter(t)
	fs.On("Chmod", "/tmp/creds/credentials.yaml", os.FileMode(0o600)).Return(nil)
	fs.On("Chmod", "/tmp/creds", os.FileMode(0o700)).Return(errors.New("operation not permitted"))

	err := migrations.NewMigrator(slog.Default()).FixPermissionsPostMigration(
		context.Background(), "/tmp/creds/credentials.yaml", fs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fix credentials directory permissions")
}
