// Package gateway routes calls to the dormmatch backend services and folds every
// outcome into a domain.Envelope. Calls never return errors: transport, decoding
// and HTTP-level failures all end up in Envelope.Errors.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
)

const contentTypeJSON = "application/json"

// Gateway issues requests against the services in its registry.
type Gateway struct {
	registry domain.ServiceRegistry
	http     domain.HTTPAdapter
	tokens   domain.TokenSource
	logger   *slog.Logger
}

// New creates a gateway. tokens may be nil, in which case no Authorization
// header is ever sent.
func New(
	registry domain.ServiceRegistry,
	httpAdapter domain.HTTPAdapter,
	tokens domain.TokenSource,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		registry: registry,
		http:     httpAdapter,
		tokens:   tokens,
		logger:   logger,
	}
}

// Request performs one call against service and returns its envelope.
// Query params are appended in order; body, when non-nil, is sent as JSON.
func (g *Gateway) Request(
	ctx context.Context,
	method string,
	service domain.ServiceID,
	endpoint string,
	body any,
	params domain.Params,
) domain.Envelope {
	g.logger.DebugContext(ctx, "Gateway call",
		"method", method,
		"service", service,
		"endpoint", endpoint)

	envelope, err := g.do(ctx, method, service, endpoint, body, params)
	if err != nil {
		g.logger.DebugContext(ctx, "Gateway call failed",
			"method", method,
			"service", service,
			"endpoint", endpoint,
			"error", err)
		return domain.ErrorEnvelope(err)
	}
	return envelope
}

func (g *Gateway) do(
	ctx context.Context,
	method string,
	service domain.ServiceID,
	endpoint string,
	body any,
	params domain.Params,
) (domain.Envelope, error) {
	target, err := g.resolveURL(service, endpoint, params)
	if err != nil {
		return domain.Envelope{}, err
	}

	header, err := g.buildHeader(ctx)
	if err != nil {
		return domain.Envelope{}, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return domain.Envelope{}, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := g.http.Do(ctx, domain.HTTPRequest{
		Method: method,
		URL:    target,
		Header: header,
		Body:   payload,
	})
	if err != nil {
		return domain.Envelope{}, errors.NewTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Envelope{}, errors.NewTransportError(fmt.Errorf("failed to read response body: %w", err))
	}

	// The body is decoded before the status is looked at, so a non-JSON error
	// page reports its decode failure rather than the HTTP status.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.Envelope{}, errors.NewTransportError(fmt.Errorf("failed to decode response body: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		httpErr := errors.NewHTTPError(resp.StatusCode, reasonPhrase(resp), backendError(parsed))
		g.logger.DebugContext(ctx, "Backend returned failure status",
			"service", service,
			"endpoint", endpoint,
			"status", resp.StatusCode)
		return domain.ErrorEnvelope(httpErr), nil
	}

	return successEnvelope(parsed, raw), nil
}

// resolveURL joins the service base URL with endpoint the way a browser
// resolves a relative reference, then appends params in order.
func (g *Gateway) resolveURL(service domain.ServiceID, endpoint string, params domain.Params) (string, error) {
	base, ok := g.registry.BaseURL(service)
	if !ok {
		return "", errors.NewConfigurationError("service", string(service),
			fmt.Sprintf("unknown service %q", service), nil)
	}

	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() || baseURL.Host == "" {
		return "", errors.NewConfigurationError("service", string(service),
			fmt.Sprintf("invalid base URL %q", base), err)
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.NewConfigurationError("endpoint", endpoint,
			fmt.Sprintf("invalid endpoint %q", endpoint), err)
	}

	target := baseURL.ResolveReference(ref)
	target.RawQuery = appendParams(target.RawQuery, params)
	return target.String(), nil
}

func (g *Gateway) buildHeader(ctx context.Context) (http.Header, error) {
	header := http.Header{}
	header.Set("Content-Type", contentTypeJSON)

	if g.tokens == nil {
		return header, nil
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return header, nil
}

// appendParams adds params to an existing raw query without reordering it.
func appendParams(rawQuery string, params domain.Params) string {
	if len(params) == 0 {
		return rawQuery
	}

	var b strings.Builder
	b.WriteString(rawQuery)
	for _, p := range params {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(paramValue(p.Value)))
	}
	return b.String()
}

func paramValue(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}

// reasonPhrase extracts the reason phrase from a status line such as
// "500 Internal Server Error".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return strings.TrimSpace(reason)
}

// backendError returns the first entry of a failure body's errors array.
func backendError(parsed any) string {
	object, ok := parsed.(map[string]any)
	if !ok {
		return ""
	}
	list, ok := object["errors"].([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	return errorString(list[0])
}

func successEnvelope(parsed any, raw []byte) domain.Envelope {
	envelope := domain.Envelope{
		Errors: []string{},
		Raw:    json.RawMessage(raw),
	}

	object, ok := parsed.(map[string]any)
	if !ok {
		envelope.Data = parsed
		if parsed == nil {
			envelope.Data = map[string]any{}
		}
		return envelope
	}

	data, hasData := object["data"]
	errs, hasErrors := object["errors"]
	if !hasData && !hasErrors {
		envelope.Data = object
		return envelope
	}

	envelope.Data = data
	if data == nil {
		envelope.Data = map[string]any{}
	}
	// One message per array entry, including empty and null entries.
	if list, ok := errs.([]any); ok {
		for _, entry := range list {
			envelope.Errors = append(envelope.Errors, errorString(entry))
		}
	} else if msg := errorString(errs); msg != "" {
		envelope.Errors = append(envelope.Errors, msg)
	}
	return envelope
}

func errorString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return cast.ToString(v)
	}
}
