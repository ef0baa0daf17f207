// Package auth turns a bearer credential into the identity of the caller
// and issues credentials on login.
package auth

import (
	"context"
	"errors"
	"time"

	"account-book/internal/apperr"
	"account-book/internal/models"
	"account-book/internal/repository"
	"account-book/internal/util"
)

// Identity is the authenticated caller. Ownership is decided on Nickname.
type Identity struct {
	ID       uint
	Nickname string
}

// UserFinder looks a user up by primary key, returning
// repository.ErrNotFound when there is none.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Verifier validates HS256 credentials against a shared secret.
type Verifier struct {
	secret string
	users  UserFinder
	now    func() time.Time
}

func NewVerifier(secret string, users UserFinder) *Verifier {
	return &Verifier{secret: secret, users: users, now: time.Now}
}

// WithClock replaces the clock used for the expiry check.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify returns the identity bound to credential. Every failure is an
// Unauthenticated error whose reason tells missing, malformed, expired and
// unknown subject apart.
func (v *Verifier) Verify(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, apperr.Unauthenticated(apperr.ReasonMissing)
	}

	claims, err := util.ParseToken(v.secret, credential)
	if err != nil {
		return Identity{}, apperr.Unauthenticated(apperr.ReasonMalformed)
	}

	// a credential is still valid at exactly its expiry instant
	if v.now().After(claims.ExpiresAt.Time) {
		return Identity{}, apperr.Unauthenticated(apperr.ReasonExpired)
	}

	user, err := v.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, apperr.Unauthenticated(apperr.ReasonUnknownSubject)
		}
		return Identity{}, apperr.Internal(err, "look up credential subject")
	}
	if !user.IsActive {
		return Identity{}, apperr.Unauthenticated(apperr.ReasonUnknownSubject)
	}

	return Identity{ID: user.ID, Nickname: user.Nickname}, nil
}
