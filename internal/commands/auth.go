package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
	"dormmatch/internal/services/session"
)

const passwordPrompt = "Password: "

// LoginCommand exchanges credentials for a token and stores it.
type LoginCommand struct {
	gateway   domain.AuthAPI
	store     domain.CredentialStore
	passwords domain.PasswordReader
	logger    *slog.Logger
}

// NewLoginCommand creates a new login command.
func NewLoginCommand(
	gateway domain.AuthAPI,
	store domain.CredentialStore,
	passwords domain.PasswordReader,
	logger *slog.Logger,
) *LoginCommand {
	return &LoginCommand{
		gateway:   gateway,
		store:     store,
		passwords: passwords,
		logger:    logging.WithOperation(logger, "login"),
	}
}

// LoginRequest contains the parameters for the login command.
// An empty Password is read from the password reader.
type LoginRequest struct {
	Email    string
	Password string
}

// Execute runs the login command. The envelope is returned as the gateway
// produced it; the error reports local failures only.
func (c *LoginCommand) Execute(ctx context.Context, req LoginRequest) (domain.Envelope, error) {
	if err := validateEmail(req.Email); err != nil {
		return domain.Envelope{}, err
	}

	password := req.Password
	if password == "" {
		var err error
		password, err = c.passwords.ReadPassword(ctx, passwordPrompt)
		if err != nil {
			return domain.Envelope{}, fmt.Errorf("failed to get password: %w", err)
		}
	}
	if err := requireField("password", password); err != nil {
		return domain.Envelope{}, err
	}

	c.logger.InfoContext(ctx, "Logging in", "email", req.Email)

	envelope := c.gateway.Login(ctx, req.Email, password)
	if !envelope.OK() {
		c.logger.DebugContext(ctx, "Login rejected", "error", envelope.FirstError())
		return envelope, nil
	}

	value, _ := envelope.DataField("token")
	token, _ := value.(string)
	if token == "" {
		return envelope, fmt.Errorf("login response did not include a token: %w", errors.ErrUnauthorized)
	}

	if err := c.store.SetToken(ctx, token); err != nil {
		return envelope, fmt.Errorf("failed to store access token: %w", err)
	}

	c.logger.InfoContext(ctx, "Successfully logged in", "email", req.Email)
	return envelope, nil
}

// LogoutCommand ends the session and forgets the stored token.
type LogoutCommand struct {
	gateway domain.AuthAPI
	store   domain.CredentialStore
	logger  *slog.Logger
}

// NewLogoutCommand creates a new logout command.
func NewLogoutCommand(gateway domain.AuthAPI, store domain.CredentialStore, logger *slog.Logger) *LogoutCommand {
	return &LogoutCommand{
		gateway: gateway,
		store:   store,
		logger:  logging.WithOperation(logger, "logout"),
	}
}

// Execute runs the logout command. The stored token is cleared even when
// the backend call fails.
func (c *LogoutCommand) Execute(ctx context.Context) (domain.Envelope, error) {
	envelope := c.gateway.Logout(ctx)
	if !envelope.OK() {
		c.logger.WarnContext(ctx, "Backend logout failed, clearing local token anyway",
			"error", envelope.FirstError())
	}

	if err := c.store.ClearToken(ctx); err != nil {
		return envelope, fmt.Errorf("failed to clear access token: %w", err)
	}

	c.logger.InfoContext(ctx, "Logged out")
	return envelope, nil
}

// WhoAmICommand fetches the authenticated user from the auth service.
type WhoAmICommand struct {
	gateway domain.AuthAPI
	logger  *slog.Logger
}

// NewWhoAmICommand creates a new whoami command.
func NewWhoAmICommand(gateway domain.AuthAPI, logger *slog.Logger) *WhoAmICommand {
	return &WhoAmICommand{gateway: gateway, logger: logging.WithOperation(logger, "whoami")}
}

// Execute runs the whoami command.
func (c *WhoAmICommand) Execute(ctx context.Context) domain.Envelope {
	c.logger.DebugContext(ctx, "Fetching authenticated user")
	return c.gateway.GetAuthUser(ctx)
}

// SessionCommand reports the claims of the stored token without calling
// any service.
type SessionCommand struct {
	tokens domain.TokenSource
	now    func() time.Time
	logger *slog.Logger
}

// NewSessionCommand creates a new session command.
func NewSessionCommand(tokens domain.TokenSource, logger *slog.Logger) *SessionCommand {
	return &SessionCommand{tokens: tokens, now: time.Now, logger: logging.WithOperation(logger, "session")}
}

// SessionResult describes the stored session.
type SessionResult struct {
	UserID    string `json:"user_id"              yaml:"user_id"`
	Role      string `json:"role"                 yaml:"role"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool   `json:"expired"              yaml:"expired"`
}

// Execute runs the session command.
func (c *SessionCommand) Execute(ctx context.Context) (*SessionResult, error) {
	claims, err := session.Current(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	result := &SessionResult{
		UserID:  claims.Subject,
		Role:    claims.Role,
		Expired: claims.Expired(c.now()),
	}
	if !claims.ExpiresAt.IsZero() {
		result.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if claims.Role != domain.RoleStudent && claims.Role != domain.RoleAdmin {
		c.logger.WarnContext(ctx, "Token carries an unknown role", "role", claims.Role)
	}

	c.logger.DebugContext(ctx, "Inspected stored session", "user_id", claims.Subject, "expired", result.Expired)
	return result, nil
}
