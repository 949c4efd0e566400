package app

import (
	"log/slog"

	httpadapter "dormmatch/internal/adapters/http"
	"dormmatch/internal/config"
	"dormmatch/internal/domain"
	"dormmatch/internal/gateway"
)

// GatewayFactory builds gateways sharing one registry and token source.
type GatewayFactory struct {
	registry domain.ServiceRegistry
	tokens   domain.TokenSource
	http     config.HTTPSettings
	logger   *slog.Logger
}

// NewGatewayFactory creates a new gateway factory.
func NewGatewayFactory(
	registry domain.ServiceRegistry,
	tokens domain.TokenSource,
	httpSettings config.HTTPSettings,
	logger *slog.Logger,
) *GatewayFactory {
	return &GatewayFactory{
		registry: registry,
		tokens:   tokens,
		http:     httpSettings,
		logger:   logger,
	}
}

// CreateSecureGateway creates a gateway that verifies TLS certificates.
func (f *GatewayFactory) CreateSecureGateway() *gateway.Gateway {
	return f.createGateway(false) // secure TLS
}

// CreateInsecureGateway creates a gateway that skips TLS verification.
func (f *GatewayFactory) CreateInsecureGateway() *gateway.Gateway {
	return f.createGateway(true) // insecure TLS
}

func (f *GatewayFactory) createGateway(insecureSkipTLS bool) *gateway.Gateway {
	adapter := httpadapter.NewAdapter(httpadapter.Options{
		Timeout:            f.http.Timeout,
		InsecureSkipVerify: insecureSkipTLS,
		RateLimit:          f.http.RateLimit,
		Burst:              f.http.Burst,
	}, f.logger)

	return gateway.New(f.registry, adapter, f.tokens, f.logger)
}
