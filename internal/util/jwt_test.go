package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := GenerateToken("secret", "account-book", 42, time.Hour, now)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "account-book", claims.Issuer)
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(time.Hour)))
}

func TestParseTokenIgnoresClock(t *testing.T) {
	// an expired token still parses; expiry is the caller's decision
	token, err := GenerateToken("secret", "", 1, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.NoError(t, err)
}

func TestParseTokenRejectsBadSignature(t *testing.T) {
	token, err := GenerateToken("secret", "", 1, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	_, err = ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
