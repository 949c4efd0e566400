package credentials_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dormmatch/internal/services/credentials"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewMemoryStore("")

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken(ctx, "t1"))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	require.NoError(t, store.ClearToken(ctx))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
