package auth

import (
	"time"

	"account-book/internal/config"
	"account-book/internal/util"
)

// Issuer signs credentials for authenticated users.
type Issuer struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    time.Duration(cfg.ExpireHours) * time.Hour,
		now:    time.Now,
	}
}

// Issue returns a credential for userID and its expiry.
func (i *Issuer) Issue(userID uint) (string, time.Time, error) {
	now := i.now()
	token, err := util.GenerateToken(i.secret, i.issuer, userID, i.ttl, now)
	if err != nil {
		return "", time.Time{}, err
	}
	ttl := i.ttl
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return token, now.Add(ttl), nil
}
