package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dormmatch/internal/config"
	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := config.Load(config.New())

	require.NoError(t, err)
	assert.Equal(t, config.ModeProduction, settings.Mode)
	assert.Equal(t, domain.ServiceRegistry{
		domain.ServiceAuth:           "http://auth:8080",
		domain.ServiceRoomManagement: "http://room-management:8081",
	}, settings.Services)
	assert.Equal(t, config.HTTPSettings{
		Timeout:   30 * time.Second,
		RateLimit: 10,
		Burst:     20,
	}, settings.HTTP)
	assert.Equal(t, logging.LevelInfo, settings.Log.Level)
	assert.Equal(t, logging.FormatText, settings.Log.Format)
	assert.Empty(t, settings.CredentialsPath)
}

func TestDefaultRegistry(t *testing.T) {
	tests := []struct {
		mode     string
		wantAuth string
		wantRoom string
	}{
		{"development", "http://localhost:8080", "http://localhost:8081"},
		{"Development", "http://localhost:8080", "http://localhost:8081"},
		{"production", "http://auth:8080", "http://room-management:8081"},
		{"staging", "http://auth:8080", "http://room-management:8081"},
		{"", "http://auth:8080", "http://room-management:8081"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			registry := config.DefaultRegistry(tt.mode)

			auth, ok := registry.BaseURL(domain.ServiceAuth)
			require.True(t, ok)
			assert.Equal(t, tt.wantAuth, auth)

			rooms, ok := registry.BaseURL(domain.ServiceRoomManagement)
			require.True(t, ok)
			assert.Equal(t, tt.wantRoom, rooms)
		})
	}
}

func TestLoad_DevelopmentModeFromEnvironment(t *testing.T) {
	t.Setenv("DORMMATCH_MODE", "development")

	settings, err := config.Load(config.New())

	require.NoError(t, err)
	assert.Equal(t, config.ModeDevelopment, settings.Mode)
	assert.Equal(t, "http://localhost:8080", settings.Services[domain.ServiceAuth])
}

func TestLoad_ServiceOverrides(t *testing.T) {
	t.Setenv("DORMMATCH_SERVICES_AUTH", "https://auth.campus.example")
	v := config.New()
	v.Set(config.KeyRoomManagementURL, "https://rooms.campus.example/api/")

	settings, err := config.Load(v)

	require.NoError(t, err)
	assert.Equal(t, "https://auth.campus.example", settings.Services[domain.ServiceAuth])
	assert.Equal(t, "https://rooms.campus.example/api/", settings.Services[domain.ServiceRoomManagement])
}

func TestLoad_FromYAML(t *testing.T) {
	v := config.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
mode: development
services:
  room_management: http://127.0.0.1:9000
http:
  timeout: 5s
  insecure: true
  rate_limit: 0
  burst: 1
log:
  level: debug
  format: json
credentials:
  path: /tmp/dormmatch/credentials.yaml
`)))

	settings, err := config.Load(v)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", settings.Services[domain.ServiceAuth])
	assert.Equal(t, "http://127.0.0.1:9000", settings.Services[domain.ServiceRoomManagement])
	assert.Equal(t, config.HTTPSettings{Timeout: 5 * time.Second, Insecure: true, RateLimit: 0, Burst: 1}, settings.HTTP)
	assert.Equal(t, logging.LevelDebug, settings.Log.Level)
	assert.Equal(t, logging.FormatJSON, settings.Log.Format)
	assert.Equal(t, "/tmp/dormmatch/credentials.yaml", settings.CredentialsPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     any
		wantField string
	}{
		{"relative auth URL", config.KeyAuthURL, "auth:8080", config.KeyAuthURL},
		{"non-http room URL", config.KeyRoomManagementURL, "ftp://rooms", config.KeyRoomManagementURL},
		{"negative timeout", config.KeyHTTPTimeout, "-1s", config.KeyHTTPTimeout},
		{"unparsable timeout", config.KeyHTTPTimeout, "soon", config.KeyHTTPTimeout},
		{"unparsable rate", config.KeyHTTPRateLimit, "fast", config.KeyHTTPRateLimit},
		{"negative burst", config.KeyHTTPBurst, -5, config.KeyHTTPBurst},
		{"unparsable insecure", config.KeyHTTPInsecure, "maybe", config.KeyHTTPInsecure},
		{"unknown log level", config.KeyLogLevel, "verbose", config.KeyLogLevel},
		{"unknown log format", config.KeyLogFormat, "xml", config.KeyLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := config.New()
			v.Set(tt.key, tt.value)

			settings, err := config.Load(v)

			require.Error(t, err)
			assert.Nil(t, settings)
			assert.True(t, errors.IsConfiguration(err))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestLoad_InvalidServicesReportedInOrder(t *testing.T) {
	for range 5 {
		v := config.New()
		v.Set(config.KeyAuthURL, "auth:8080")
		v.Set(config.KeyRoomManagementURL, "ftp://rooms")

		_, err := config.Load(v)

		require.Error(t, err)
		assert.Contains(t, err.Error(), config.KeyAuthURL)
		assert.NotContains(t, err.Error(), config.KeyRoomManagementURL)
	}
}

func TestLoad_ZeroTimeoutDisablesIt(t *testing.T) {
	v := config.New()
	v.Set(config.KeyHTTPTimeout, "0")

	settings, err := config.Load(v)

	require.NoError(t, err)
	assert.Zero(t, settings.HTTP.Timeout)
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr string
	}{
		{"http://localhost:8080", ""},
		{"https://auth.example.com/base/", ""},
		{"localhost:8080", "scheme must be http or https"},
		{"/auth", "scheme must be http or https"},
		{"http://", "missing host"},
		{"http://[::1", "invalid base URL"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := config.ValidateBaseURL(tt.raw)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
