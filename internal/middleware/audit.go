package middleware

import (
	"context"
	"net/http"

	"account-book/internal/logging"
	"account-book/internal/service"

	"github.com/gin-gonic/gin"
)

// AuditRecorder stores one audit entry.
type AuditRecorder interface {
	Record(ctx context.Context, e service.AuditEntry)
}

// AuditMiddleware records every mutating request of an authenticated user.
// It must run after AuthMiddleware. Request bodies are never stored since
// some carry passwords.
func AuditMiddleware(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		ident, ok := Identity(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if q := c.Request.URL.RawQuery; q != "" {
			action += "?" + q
		}

		recorder.Record(context.WithoutCancel(c.Request.Context()), service.AuditEntry{
			UserID:    ident.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: logging.RequestID(c),
		})
	}
}
