package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dormmatch/internal/adapters/filesystem"
	"dormmatch/internal/app"
	"dormmatch/internal/config"
	"dormmatch/internal/domain"
	"dormmatch/internal/services/credentials"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile      string
	verbose      bool
	outputFormat string

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "dormmatch",
	Short: "A CLI client for the DormMatch authentication and room-management services",
	Long: `DormMatch is a command-line client for the dormitory matching platform.
It signs students in, manages their profile, and lets them search rooms,
apply for them and follow their applications. Administrators can create
rooms and review applications.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: validateOutputFormat,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd, err := rootCmd.ExecuteContextC(ctx); err != nil {
		if cmd == nil {
			cmd = rootCmd
		}
		reportError(cmd, err)
		stop()
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dormmatch/config.yaml)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		StringVarP(&outputFormat, "output", "o", formatJSON, "Output format (json or yaml)")
	rootCmd.PersistentFlags().
		String("mode", "", "Deployment mode selecting default service URLs (development or production)")
	rootCmd.PersistentFlags().
		Bool("insecure", false, "Skip TLS certificate verification")
}

func initConfig() {
	// Already wired, e.g. by tests.
	if application != nil {
		return
	}

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize the application with dependency injection
	opts := []app.Option{app.WithSettings(settings)}
	if verbose {
		opts = append(opts, app.WithVerbose(true))
	}

	application, err = app.NewApp(context.Background(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
}

func loadSettings() (*config.Settings, error) {
	return loadSettingsFrom(filesystem.New())
}

func loadSettingsFrom(fs domain.FileSystemAdapter) (*config.Settings, error) {
	v := config.New()

	path := cfgFile
	if path == "" {
		defaultPath, err := credentials.NewProvider(fs).ConfigPath()
		if err != nil {
			return nil, err
		}
		// The default config file is optional, an explicit one is not.
		if _, err := fs.Stat(defaultPath); err == nil {
			path = defaultPath
		}
	}

	if err := bindGlobalFlags(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return config.Load(v)
}

func bindGlobalFlags(v *viper.Viper) error {
	flags := map[string]string{
		config.KeyMode:         "mode",
		config.KeyHTTPInsecure: "insecure",
	}
	for key, name := range flags {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// requireApp returns the application or an error when it is not wired.
func requireApp() (*app.App, error) {
	a := GetApp()
	if a == nil {
		return nil, errors.New("application not initialized")
	}
	return a, nil
}
