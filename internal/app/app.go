package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"dormmatch/internal/config"
	"dormmatch/internal/domain"
	"dormmatch/internal/logging"
)

// App contains all application dependencies.
type App struct {
	// Resolved settings (service registry, HTTP, logging)
	Settings *config.Settings

	// Token persistence
	Credentials domain.CredentialStore

	// Factory for creating gateways on-demand
	GatewayFactory *GatewayFactory

	// File operations
	FileSystem domain.FileSystemAdapter

	// I/O dependencies
	PasswordReader domain.PasswordReader

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	Settings *config.Settings
	LogLevel logging.LogLevel // overrides Settings.Log.Level when set
	Verbose  bool
	Stdin    io.Reader
	Stderr   io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level.
func WithLogLevel(level logging.LogLevel) Option {
	return func(cfg *Config) {
		cfg.LogLevel = level
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = logging.LevelDebug
		}
	}
}

// WithSettings uses settings instead of loading them from the environment.
func WithSettings(settings *config.Settings) Option {
	return func(cfg *Config) {
		cfg.Settings = settings
	}
}

// WithIO replaces the standard streams used for prompts and logs.
func WithIO(stdin io.Reader, stderr io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdin = stdin
		cfg.Stderr = stderr
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &Config{
		Verbose: false,
		Stdin:   os.Stdin,
		Stderr:  os.Stderr,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Settings == nil {
		settings, err := config.Load(config.New())
		if err != nil {
			return nil, err
		}
		cfg.Settings = settings
	}

	return NewAppWithConfig(ctx, cfg)
}

// Gateway returns a gateway honoring the configured TLS verification setting.
func (a *App) Gateway() domain.Gateway {
	if a.Settings.HTTP.Insecure {
		return a.GatewayFactory.CreateInsecureGateway()
	}
	return a.GatewayFactory.CreateSecureGateway()
}
