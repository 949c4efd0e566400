package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dormmatch/internal/domain"
	dmerrors "dormmatch/internal/errors"
	"dormmatch/internal/logging"
	"dormmatch/internal/mocks"
	"dormmatch/internal/services/credentials"
	"dormmatch/internal/testutil"
)

func okEnvelope(data any) domain.Envelope {
	return domain.Envelope{Data: data, Errors: []string{}}
}

func TestLoginCommand_Execute_StoresToken(t *testing.T) {
	// Arrange
	gateway := mocks.NewMockAuthAPI(t)
	store := mocks.NewMockCredentialStore(t)
	passwords := mocks.NewMockPasswordReader(t)

	expected := okEnvelope(map[string]any{"token": "t1"})
	gateway.On("Login", mock.Anything, "a@b.com", "pw").Return(expected).Once()
	store.On("SetToken", mock.Anything, "t1").Return(nil).Once()

	cmd := NewLoginCommand(gateway, store, passwords, testutil.Logger())

	// Act
	envelope, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com", Password: "pw"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expected, envelope)
	passwords.AssertNotCalled(t, "ReadPassword", mock.Anything, mock.Anything)
}

func TestLoginCommand_Execute_PromptsForPassword(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	store := credentials.NewMemoryStore("")
	passwords := mocks.NewMockPasswordReader(t)

	passwords.On("ReadPassword", mock.Anything, "Password: ").Return("typed", nil).Once()
	gateway.On("Login", mock.Anything, "a@b.com", "typed").Return(okEnvelope(map[string]any{"token": "t2"})).Once()

	cmd := NewLoginCommand(gateway, store, passwords, testutil.Logger())
	_, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com"})

	require.NoError(t, err)
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t2", token)
}

func TestLoginCommand_Execute_PasswordReaderError(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	passwords := mocks.NewMockPasswordReader(t)
	passwords.On("ReadPassword", mock.Anything, mock.Anything).Return("", errors.New("no tty")).Once()

	cmd := NewLoginCommand(gateway, credentials.NewMemoryStore(""), passwords, testutil.Logger())
	_, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com"})

	require.Error(t, err)
	assert.Equal(t, "failed to get password: no tty", err.Error())
}

func TestLoginCommand_Execute_InvalidEmail(t *testing.T) {
	cmd := NewLoginCommand(mocks.NewMockAuthAPI(t), credentials.NewMemoryStore(""),
		mocks.NewMockPasswordReader(t), testutil.Logger())

	for _, email := range []string{"", "not-an-email"} {
		_, err := cmd.Execute(context.Background(), LoginRequest{Email: email, Password: "pw"})

		require.Error(t, err)
		assert.True(t, dmerrors.IsValidation(err))
	}
}

func TestLoginCommand_Execute_RejectedLeavesStoreUntouched(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	store := mocks.NewMockCredentialStore(t)

	rejected := domain.FailedEnvelope("Invalid credentials")
	gateway.On("Login", mock.Anything, "a@b.com", "bad").Return(rejected).Once()

	cmd := NewLoginCommand(gateway, store, mocks.NewMockPasswordReader(t), testutil.Logger())
	envelope, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com", Password: "bad"})

	require.NoError(t, err)
	assert.Equal(t, rejected, envelope)
	store.AssertNotCalled(t, "SetToken", mock.Anything, mock.Anything)
}

func TestLoginCommand_Execute_MissingToken(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	gateway.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(okEnvelope(map[string]any{"user": "x"})).Once()

	cmd := NewLoginCommand(gateway, credentials.NewMemoryStore(""), mocks.NewMockPasswordReader(t), testutil.Logger())
	_, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com", Password: "pw"})

	require.Error(t, err)
	assert.True(t, dmerrors.IsUnauthorized(err))
}

func TestLoginCommand_Execute_StoreError(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	store := mocks.NewMockCredentialStore(t)
	gateway.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(okEnvelope(map[string]any{"token": "t1"})).Once()
	store.On("SetToken", mock.Anything, "t1").Return(errors.New("disk full")).Once()

	cmd := NewLoginCommand(gateway, store, mocks.NewMockPasswordReader(t), testutil.Logger())
	_, err := cmd.Execute(context.Background(), LoginRequest{Email: "a@b.com", Password: "pw"})

	require.Error(t, err)
	assert.Equal(t, "failed to store access token: disk full", err.Error())
}

func TestLogoutCommand_Execute(t *testing.T) {
	tests := []struct {
		name     string
		envelope domain.Envelope
	}{
		{"backend success", okEnvelope(map[string]any{})},
		{"backend failure", domain.FailedEnvelope("HTTP 500: Internal Server Error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockAuthAPI(t)
			store := credentials.NewMemoryStore("t1")
			gateway.On("Logout", mock.Anything).Return(tt.envelope).Once()

			envelope, err := NewLogoutCommand(gateway, store, testutil.Logger()).Execute(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.envelope, envelope)
			token, _ := store.Token(context.Background())
			assert.Empty(t, token, "token must be cleared regardless of the backend outcome")
		})
	}
}

func TestLogoutCommand_LogsOperation(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: logging.LevelInfo, Format: logging.FormatText, Output: &logs})
	gateway := mocks.NewMockAuthAPI(t)
	gateway.On("Logout", mock.Anything).Return(domain.FailedEnvelope("HTTP 500: Internal Server Error")).Once()

	_, err := NewLogoutCommand(gateway, credentials.NewMemoryStore("t1"), logger).Execute(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "operation=logout")
	assert.Contains(t, logs.String(), `msg="Backend logout failed, clearing local token anyway"`)
	assert.Contains(t, logs.String(), `msg="Logged out"`)
}

func TestLogoutCommand_Execute_ClearError(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	store := mocks.NewMockCredentialStore(t)
	gateway.On("Logout", mock.Anything).Return(okEnvelope(map[string]any{})).Once()
	store.On("ClearToken", mock.Anything).Return(errors.New("read-only")).Once()

	_, err := NewLogoutCommand(gateway, store, testutil.Logger()).Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, "failed to clear access token: read-only", err.Error())
}

func TestWhoAmICommand_Execute(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)
	expected := okEnvelope(map[string]any{"email": "a@b.com"})
	gateway.On("GetAuthUser", mock.Anything).Return(expected).Once()

	envelope := NewWhoAmICommand(gateway, testutil.Logger()).Execute(context.Background())

	assert.Equal(t, expected, envelope)
}

func TestSessionCommand_Execute(t *testing.T) {
	expiry := time.Date(2031, 5, 1, 12, 0, 0, 0, time.UTC)
	store := credentials.NewMemoryStore(testutil.Token(t, "u1", domain.RoleStudent, expiry))

	cmd := NewSessionCommand(store, testutil.Logger())
	cmd.now = func() time.Time { return expiry.Add(time.Hour) }

	result, err := cmd.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &SessionResult{
		UserID:    "u1",
		Role:      domain.RoleStudent,
		ExpiresAt: "2031-05-01T12:00:00Z",
		Expired:   true,
	}, result)
}

func TestSessionCommand_WarnsOnUnknownRole(t *testing.T) {
	tests := []struct {
		role string
		warn bool
	}{
		{role: domain.RoleStudent, warn: false},
		{role: domain.RoleAdmin, warn: false},
		{role: "guest", warn: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			var logs bytes.Buffer
			logger := logging.NewLogger(logging.Config{Level: logging.LevelWarn, Format: logging.FormatText, Output: &logs})
			store := credentials.NewMemoryStore(testutil.Token(t, "u1", tt.role, time.Time{}))

			result, err := NewSessionCommand(store, logger).Execute(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.role, result.Role)
			if tt.warn {
				assert.Contains(t, logs.String(), `msg="Token carries an unknown role" operation=session role=guest`)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestSessionCommand_Execute_NotLoggedIn(t *testing.T) {
	_, err := NewSessionCommand(credentials.NewMemoryStore(""), testutil.Logger()).Execute(context.Background())

	require.Error(t, err)
	assert.True(t, dmerrors.IsUnauthorized(err))
}
