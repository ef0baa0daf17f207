package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"account-book/internal/apperr"
	"account-book/internal/config"
	"account-book/internal/models"
	"account-book/internal/repository"
	"account-book/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type fakeUsers map[uint]*models.User

func (f fakeUsers) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type brokenUsers struct{}

func (brokenUsers) FindUserByID(context.Context, uint) (*models.User, error) {
	return nil, errors.New("connection reset")
}

var issuedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func users() fakeUsers {
	return fakeUsers{7: {ID: 7, Nickname: "alice", IsActive: true}}
}

func token(t *testing.T, userID uint) string {
	t.Helper()
	tok, err := util.GenerateToken(secret, "account-book", userID, time.Hour, issuedAt)
	require.NoError(t, err)
	return tok
}

func TestVerifyReturnsIdentity(t *testing.T) {
	v := NewVerifier(secret, users()).WithClock(func() time.Time { return issuedAt.Add(time.Minute) })

	ident, err := v.Verify(context.Background(), token(t, 7))
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 7, Nickname: "alice"}, ident)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	tok := token(t, 7)
	exp := issuedAt.Add(time.Hour)

	v := NewVerifier(secret, users()).WithClock(func() time.Time { return exp })
	_, err := v.Verify(context.Background(), tok)
	assert.NoError(t, err, "valid at exactly exp")

	v = NewVerifier(secret, users()).WithClock(func() time.Time { return exp.Add(time.Second) })
	_, err = v.Verify(context.Background(), tok)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
	assert.Equal(t, apperr.ReasonExpired, apperr.ReasonOf(err))
}

func TestVerifyRejections(t *testing.T) {
	now := func() time.Time { return issuedAt }

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7}).SignedString([]byte(secret))
	require.NoError(t, err)

	cases := []struct {
		name       string
		credential string
		users      UserFinder
		reason     apperr.Reason
	}{
		{"missing", "", users(), apperr.ReasonMissing},
		{"garbage", "not-a-token", users(), apperr.ReasonMalformed},
		{"wrong secret", func() string {
			tok, _ := util.GenerateToken("other", "x", 7, time.Hour, issuedAt)
			return tok
		}(), users(), apperr.ReasonMalformed},
		{"no expiry", noExp, users(), apperr.ReasonMalformed},
		{"unknown subject", token(t, 99), users(), apperr.ReasonUnknownSubject},
		{"inactive subject", token(t, 7), fakeUsers{7: {ID: 7, Nickname: "alice"}}, apperr.ReasonUnknownSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVerifier(secret, tc.users).WithClock(now).Verify(context.Background(), tc.credential)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
			assert.Equal(t, tc.reason, apperr.ReasonOf(err))
		})
	}
}

func TestVerifyStoreFailureIsInternal(t *testing.T) {
	v := NewVerifier(secret, brokenUsers{}).WithClock(func() time.Time { return issuedAt })
	_, err := v.Verify(context.Background(), token(t, 7))
	assert.True(t, apperr.Is(err, apperr.CodeInternal))
}

func TestIssuerRoundTrip(t *testing.T) {
	iss := NewIssuer(config.JWTConfig{Secret: secret, Issuer: "account-book", ExpireHours: 2})
	iss.now = func() time.Time { return issuedAt }

	tok, exp, err := iss.Issue(7)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(2*time.Hour), exp)

	v := NewVerifier(secret, users()).WithClock(func() time.Time { return issuedAt })
	ident, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", ident.Nickname)
}
