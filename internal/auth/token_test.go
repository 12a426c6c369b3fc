package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, exp, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("other", 5).GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsMissingSubject(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken("")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}
