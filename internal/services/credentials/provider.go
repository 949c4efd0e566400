package credentials

import (
	"fmt"
	"path/filepath"

	"dormmatch/internal/domain"
)

// Provider resolves the default locations of dormmatch's files.
type Provider struct {
	fs domain.FileSystemAdapter
}

// NewProvider creates a new path provider.
func NewProvider(fs domain.FileSystemAdapter) *Provider {
	return &Provider{
		fs: fs,
	}
}

// ConfigDir returns the directory holding dormmatch's configuration.
func (p *Provider) ConfigDir() (string, error) {
	homeDir, err := p.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dormmatch"), nil
}

// ConfigPath returns the path to the dormmatch configuration file.
func (p *Provider) ConfigPath() (string, error) {
	dir, err := p.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// CredentialsPath returns the default location of the credential file.
func (p *Provider) CredentialsPath() (string, error) {
	dir, err := p.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.yaml"), nil
}
