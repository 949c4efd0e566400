package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
)

//nolint:gochecknoglobals // Package-level constants for method validation
var httpMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// RequestCommand issues an arbitrary call through the gateway.
type RequestCommand struct {
	gateway domain.Requester
	logger  *slog.Logger
}

// NewRequestCommand creates a new request command.
func NewRequestCommand(gateway domain.Requester, logger *slog.Logger) *RequestCommand {
	return &RequestCommand{gateway: gateway, logger: logging.WithOperation(logger, "request")}
}

// RequestRequest contains the parameters for the request command.
type RequestRequest struct {
	Method   string
	Service  string
	Endpoint string
	Body     string   // raw JSON, empty for none
	Query    []string // key=value pairs in order
}

// Execute runs the request command.
func (c *RequestCommand) Execute(ctx context.Context, req RequestRequest) (domain.Envelope, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if !slices.Contains(httpMethods, method) {
		return domain.Envelope{}, errors.NewValidationError("method", req.Method, "one_of",
			"must be one of: "+strings.Join(httpMethods, ", "))
	}
	if err := requireField("endpoint", req.Endpoint); err != nil {
		return domain.Envelope{}, err
	}

	var body any
	if strings.TrimSpace(req.Body) != "" {
		if !json.Valid([]byte(req.Body)) {
			return domain.Envelope{}, errors.NewValidationError("data", req.Body, "json", "must be valid JSON")
		}
		body = json.RawMessage(req.Body)
	}

	params, err := ParseQuery(req.Query)
	if err != nil {
		return domain.Envelope{}, err
	}

	service := domain.ServiceID(strings.ToUpper(strings.TrimSpace(req.Service)))
	c.logger.DebugContext(ctx, "Issuing raw request",
		"method", method,
		"service", service,
		"endpoint", req.Endpoint)

	return c.gateway.Request(ctx, method, service, req.Endpoint, body, params), nil
}

// ParseQuery turns key=value pairs into ordered params.
func ParseQuery(pairs []string) (domain.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(domain.Params, 0, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.NewValidationError("query", pair, "key_value", "must have the form key=value")
		}
		params = append(params, domain.Param{Key: key, Value: value})
	}
	return params, nil
}
