package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, issued, err := GenerateSessionToken(secret, "Hana", "hana@example.com", time.Hour, time.Now())
	require.NoError(t, err)
	assert.Len(t, issued.ID, 21)

	claims, err := ValidateAndParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "Hana", claims.Name)
	assert.Equal(t, "hana@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestSessionToken_Rejections(t *testing.T) {
	secret := []byte("test-secret")

	expired, _, err := GenerateSessionToken(secret, "Hana", "hana@example.com", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ValidateAndParseToken(secret, expired)
	assert.Error(t, err)

	valid, _, err := GenerateSessionToken(secret, "Hana", "hana@example.com", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ValidateAndParseToken([]byte("other-secret"), valid)
	assert.Error(t, err)

	_, err = ValidateAndParseToken(secret, "not-a-token")
	assert.Error(t, err)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, ComparePassword(hash, "s3cret"))
	assert.False(t, ComparePassword(hash, "wrong"))
	assert.False(t, ComparePassword("not-a-hash", "s3cret"))
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(32)
	b := GenerateRandomString(32)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
