package domain

import (
	"context"
	"time"
)

// PasswordReader handles secure password input from users.
type PasswordReader interface {
	ReadPassword(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}

// Claims is the decoded payload of an access token issued by the auth service.
type Claims struct {
	Subject   string    // user id
	Role      string    // "student" or "admin"
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the token is past its expiry at the given instant.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
