package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"dormmatch/internal/domain"
)

const (
	// Rate limiting configuration.
	DefaultRateLimit = 10
	DefaultBurst     = 20
)

// Options configures the adapter.
type Options struct {
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
	// RateLimit is the allowed requests per second; zero or less disables limiting.
	RateLimit float64
	// Burst is the limiter burst size.
	Burst int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		RateLimit: DefaultRateLimit,
		Burst:     DefaultBurst,
	}
}

// Adapter is an HTTP client adapter using resty with rate limiting.
// Requests are never retried.
type Adapter struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAdapter creates a new HTTP adapter. Cookies received from the backends are
// kept in the client's cookie jar and sent back on later requests.
func NewAdapter(opts Options, logger *slog.Logger) *Adapter {
	client := resty.New().
		SetRetryCount(0).
		SetAllowGetMethodPayload(true).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // User-configurable for self-signed certificates
		})
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	adapter := &Adapter{
		client: client,
		logger: logger,
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		adapter.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return adapter.limiter.Wait(req.Context())
		})
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	return adapter
}

// Do performs the request and returns the raw response. The caller owns the
// response body and must close it.
func (a *Adapter) Do(ctx context.Context, req domain.HTTPRequest) (*http.Response, error) {
	request := a.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	if len(req.Header) > 0 {
		request.SetHeaderMultiValues(req.Header)
	}

	if req.Body != nil {
		request.SetBody(req.Body)
	}

	resp, err := request.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s request: %w", req.Method, err)
	}
	if resp.RawResponse == nil {
		return nil, fmt.Errorf("failed to execute %s request: no response received", req.Method)
	}

	// Response middleware is skipped for unparsed responses, so log here.
	a.logger.DebugContext(ctx, "HTTP response",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)
	return resp.RawResponse, nil
}
