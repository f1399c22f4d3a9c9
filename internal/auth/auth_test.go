package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenAuthenticator_Verify(t *testing.T) {
	a := NewTokenAuthenticator(testSecret)
	ctx := context.Background()

	proof, err := GenerateToken("GPLAYER", testSecret, time.Hour)
	require.NoError(t, err)

	assert.NoError(t, a.Verify(ctx, "GPLAYER", proof))

	// Claiming a different principal with a valid token fails.
	err = a.Verify(ctx, "GADMIN", proof)
	assert.ErrorIs(t, err, ErrPrincipalMismatch)
}

func TestTokenAuthenticator_RejectsBadProofs(t *testing.T) {
	a := NewTokenAuthenticator(testSecret)
	ctx := context.Background()

	// Wrong secret.
	proof, err := GenerateToken("GPLAYER", "other-secret", time.Hour)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Verify(ctx, "GPLAYER", proof), ErrInvalidProof)

	// Expired token.
	proof, err = GenerateToken("GPLAYER", testSecret, -time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Verify(ctx, "GPLAYER", proof), ErrInvalidProof)

	// Garbage.
	assert.ErrorIs(t, a.Verify(ctx, "GPLAYER", "not-a-token"), ErrInvalidProof)
	assert.ErrorIs(t, a.Verify(ctx, "GPLAYER", ""), ErrInvalidProof)
}

func TestTokenAuthenticator_Authenticate(t *testing.T) {
	a := NewTokenAuthenticator(testSecret)
	ctx := context.Background()

	proof, err := GenerateToken("GADMIN", testSecret, time.Hour)
	require.NoError(t, err)

	principal, err := a.Authenticate(ctx, proof)
	require.NoError(t, err)
	assert.Equal(t, "GADMIN", principal)
}
