package app

import (
	"context"

	"dormmatch/internal/adapters/filesystem"
	"dormmatch/internal/adapters/terminal"
	"dormmatch/internal/logging"
	"dormmatch/internal/services/credentials"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	settings := cfg.Settings

	// Create logger.
	logConfig := settings.Log
	if cfg.LogLevel != "" {
		logConfig.Level = cfg.LogLevel
	}
	logConfig.Output = cfg.Stderr
	logger := logging.NewLogger(logConfig)

	// Create filesystem adapter.
	fs := filesystem.New()

	// Create password reader with environment variable support.
	passwordReader := terminal.NewAdapter(cfg.Stdin, cfg.Stderr)

	// Create credential store.
	credentialsPath := settings.CredentialsPath
	if credentialsPath == "" {
		var err error
		credentialsPath, err = credentials.NewProvider(fs).CredentialsPath()
		if err != nil {
			return nil, err
		}
	}
	store, err := credentials.NewRepository(fs, credentialsPath, logger)
	if err != nil {
		return nil, err
	}

	// Create gateway factory for on-demand gateway creation.
	gatewayFactory := NewGatewayFactory(settings.Services, store, settings.HTTP, logger)

	// Log configuration details.
	logger.DebugContext(ctx, "Initializing dormmatch with configuration",
		"mode", settings.Mode,
		"logLevel", string(logConfig.Level),
		"verbose", cfg.Verbose,
		"credentialsPath", credentialsPath)

	return &App{
		Settings:       settings,
		Credentials:    store,
		GatewayFactory: gatewayFactory,
		FileSystem:     fs,
		PasswordReader: passwordReader,
		Logger:         logger,
		Config:         cfg,
	}, nil
}
