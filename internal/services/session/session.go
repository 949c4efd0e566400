// Package session inspects the access token held by the credential store.
// Tokens are decoded without verifying their signature: the services remain
// the only authority, the CLI just needs to know whose token it holds.
package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
)

// tokenClaims mirrors the payload the auth service signs.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Parse decodes token into domain.Claims.
func Parse(token string) (domain.Claims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Claims{}, fmt.Errorf("failed to decode access token: %w", err)
	}

	result := domain.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

// Current returns the claims of the stored token.
func Current(ctx context.Context, tokens domain.TokenSource) (domain.Claims, error) {
	token, err := tokens.Token(ctx)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("failed to read access token: %w", err)
	}
	if token == "" {
		return domain.Claims{}, fmt.Errorf("not logged in: %w", errors.ErrUnauthorized)
	}
	return Parse(token)
}

// UserID returns the subject of the stored token.
func UserID(ctx context.Context, tokens domain.TokenSource) (string, error) {
	claims, err := Current(ctx, tokens)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("access token has no subject: %w", errors.ErrUnauthorized)
	}
	return claims.Subject, nil
}
