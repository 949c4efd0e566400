// Package config loads dormmatch settings from viper and builds the service
// registry the gateway routes through.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. DORMMATCH_SERVICES_AUTH.
const EnvPrefix = "DORMMATCH"

// Modes select the default service locations.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Setting keys.
const (
	KeyMode              = "mode"
	KeyAuthURL           = "services.auth"
	KeyRoomManagementURL = "services.room_management"
	KeyHTTPTimeout       = "http.timeout"
	KeyHTTPInsecure      = "http.insecure"
	KeyHTTPRateLimit     = "http.rate_limit"
	KeyHTTPBurst         = "http.burst"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyCredentialsPath   = "credentials.path"
)

// HTTP defaults.
const (
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultHTTPRateLimit = 10.0
	DefaultHTTPBurst     = 20
)

const (
	developmentAuthURL  = "http://localhost:8080"
	developmentRoomsURL = "http://localhost:8081"
	productionAuthURL   = "http://auth:8080"
	productionRoomsURL  = "http://room-management:8081"
)

// Settings is the resolved configuration.
type Settings struct {
	Mode            string
	Services        domain.ServiceRegistry
	HTTP            HTTPSettings
	Log             logging.Config
	CredentialsPath string // empty means the provider default
}

// HTTPSettings configure the HTTP adapter.
type HTTPSettings struct {
	Timeout   time.Duration
	Insecure  bool
	RateLimit float64
	Burst     int
}

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every setting. Service URLs are
// left unset so that the mode can pick them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, ModeProduction)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyHTTPInsecure, false)
	v.SetDefault(KeyHTTPRateLimit, DefaultHTTPRateLimit)
	v.SetDefault(KeyHTTPBurst, DefaultHTTPBurst)
	v.SetDefault(KeyLogLevel, string(logging.LevelInfo))
	v.SetDefault(KeyLogFormat, logging.FormatText)
	v.SetDefault(KeyCredentialsPath, "")
}

// DefaultRegistry returns the service locations for mode. Anything other
// than development is treated as production.
func DefaultRegistry(mode string) domain.ServiceRegistry {
	if strings.EqualFold(mode, ModeDevelopment) {
		return domain.ServiceRegistry{
			domain.ServiceAuth:           developmentAuthURL,
			domain.ServiceRoomManagement: developmentRoomsURL,
		}
	}
	return domain.ServiceRegistry{
		domain.ServiceAuth:           productionAuthURL,
		domain.ServiceRoomManagement: productionRoomsURL,
	}
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	mode := strings.ToLower(strings.TrimSpace(v.GetString(KeyMode)))

	services, err := loadServices(v, mode)
	if err != nil {
		return nil, err
	}

	httpSettings, err := loadHTTP(v)
	if err != nil {
		return nil, err
	}

	logConfig, err := loadLog(v)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Mode:            mode,
		Services:        services,
		HTTP:            httpSettings,
		Log:             logConfig,
		CredentialsPath: v.GetString(KeyCredentialsPath),
	}, nil
}

func loadServices(v *viper.Viper, mode string) (domain.ServiceRegistry, error) {
	services := DefaultRegistry(mode)

	overrides := map[domain.ServiceID]string{
		domain.ServiceAuth:           KeyAuthURL,
		domain.ServiceRoomManagement: KeyRoomManagementURL,
	}
	for service, key := range overrides {
		if value := strings.TrimSpace(v.GetString(key)); value != "" {
			services[service] = value
		}
	}

	for _, service := range services.Services() {
		base := services[service]
		if err := ValidateBaseURL(base); err != nil {
			return nil, errors.NewConfigurationError(overrides[service], base, err.Error(), err)
		}
	}
	return services, nil
}

func loadHTTP(v *viper.Viper) (HTTPSettings, error) {
	timeout, err := cast.ToDurationE(v.Get(KeyHTTPTimeout))
	if err != nil || timeout < 0 {
		return HTTPSettings{}, errors.NewConfigurationError(KeyHTTPTimeout, v.GetString(KeyHTTPTimeout),
			"must be a non-negative duration", err)
	}

	rateLimit, err := cast.ToFloat64E(v.Get(KeyHTTPRateLimit))
	if err != nil {
		return HTTPSettings{}, errors.NewConfigurationError(KeyHTTPRateLimit, v.GetString(KeyHTTPRateLimit),
			"must be a number", err)
	}

	burst, err := cast.ToIntE(v.Get(KeyHTTPBurst))
	if err != nil || burst < 0 {
		return HTTPSettings{}, errors.NewConfigurationError(KeyHTTPBurst, v.GetString(KeyHTTPBurst),
			"must be a non-negative integer", err)
	}

	insecure, err := cast.ToBoolE(v.Get(KeyHTTPInsecure))
	if err != nil {
		return HTTPSettings{}, errors.NewConfigurationError(KeyHTTPInsecure, v.GetString(KeyHTTPInsecure),
			"must be a boolean", err)
	}

	return HTTPSettings{
		Timeout:   timeout,
		Insecure:  insecure,
		RateLimit: rateLimit,
		Burst:     burst,
	}, nil
}

func loadLog(v *viper.Viper) (logging.Config, error) {
	level, err := logging.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return logging.Config{}, errors.NewConfigurationError(KeyLogLevel, v.GetString(KeyLogLevel), err.Error(), err)
	}

	format := strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat)))
	switch format {
	case logging.FormatText, logging.FormatJSON:
	case "":
		format = logging.FormatText
	default:
		return logging.Config{}, errors.NewConfigurationError(KeyLogFormat, format,
			fmt.Sprintf("must be %q or %q", logging.FormatText, logging.FormatJSON), nil)
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	return cfg, nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL with a host.
func ValidateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	return nil
}
