package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the credential payload: the subject user id plus the
// registered claims, of which exp is mandatory.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ErrNoExpiry is returned for a well-signed token that lacks exp.
var ErrNoExpiry = errors.New("token has no expiry")

// GenerateToken signs an HS256 token for userID that expires ttl after now.
func GenerateToken(secret, issuer string, userID uint, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken checks encoding and signature and returns the claims. Time
// based claims are not validated here; callers compare ExpiresAt against
// their own clock.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.ExpiresAt == nil {
		return nil, ErrNoExpiry
	}
	return claims, nil
}
