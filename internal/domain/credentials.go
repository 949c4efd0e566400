package domain

import "context"

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty token means no Authorization header is sent.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CredentialStore persists the bearer token between invocations.
type CredentialStore interface {
	TokenSource
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}
