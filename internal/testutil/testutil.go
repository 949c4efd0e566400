// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dormmatch/internal/logging"
)

// TokenSecret signs tokens produced by Token.
const TokenSecret = "test-secret"

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Token returns an HS256 access token shaped like the ones the auth service issues.
func Token(t *testing.T, subject, role string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
	}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TokenSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// RecordedRequest is a request captured by a Backend.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Backend is an httptest server that records every request it receives and
// answers with a fixed status and body.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a backend answering every request with status and body.
// It is closed when the test finishes.
func NewBackend(t *testing.T, status int, body string) *Backend {
	t.Helper()
	return startBackend(t, status, body, false)
}

// NewTLSBackend is NewBackend served over HTTPS with a self-signed certificate.
func NewTLSBackend(t *testing.T, status int, body string) *Backend {
	t.Helper()
	return startBackend(t, status, body, true)
}

func startBackend(t *testing.T, status int, body string, useTLS bool) *Backend {
	t.Helper()

	b := &Backend{}
	b.Server = httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     payload,
		})
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	if useTLS {
		b.StartTLS()
	} else {
		b.Start()
	}
	t.Cleanup(b.Close)
	return b
}

// Requests returns a copy of the recorded requests.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// LastRequest returns the most recent request, failing the test if there is none.
func (b *Backend) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := b.Requests()
	if len(requests) == 0 {
		t.Fatal("backend received no requests")
	}
	return requests[len(requests)-1]
}
