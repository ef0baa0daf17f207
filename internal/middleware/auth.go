package middleware

import (
	"context"
	"strings"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/logging"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	// TokenCookie may carry the credential for clients that cannot set headers.
	TokenCookie = "abk_token"
)

// IdentityVerifier resolves a credential to the caller's identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (auth.Identity, error)
}

// AuthMiddleware verifies the credential and stores the identity on the
// context. Any failure answers 401 before the handler runs.
func AuthMiddleware(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := verifier.Verify(c.Request.Context(), credential(c))
		if err != nil {
			logging.FromGin(c).Info("request not authenticated", "reason", string(apperr.ReasonOf(err)))
			util.Fail(c, err)
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// credential looks in the Authorization header, then the token query
// parameter used by downloads, then the cookie.
func credential(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t := c.Query("token"); t != "" {
		return t
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Identity returns the identity set by AuthMiddleware.
func Identity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	ident, ok := v.(auth.Identity)
	return ident, ok
}
