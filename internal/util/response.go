package util

import (
	"net/http"

	"account-book/internal/apperr"
	"account-book/internal/logging"

	"github.com/gin-gonic/gin"
)

// CodeOK is the code of every successful envelope.
const CodeOK = "OK"

// Response is a free-form data payload.
type Response map[string]interface{}

// Success writes {"code":"OK","data":data} with the given status.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// NoContent answers a state transition that has nothing to return.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail maps err onto its status and writes {"code":TEXT_CODE,"detail":message}.
// Internal errors are logged and their cause is not echoed.
func Fail(c *gin.Context, err error) {
	rich := apperr.From(err)
	status := rich.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	detail := rich.Message
	if status >= http.StatusInternalServerError {
		logging.FromGin(c).Error("internal error", logging.FieldError, err.Error())
		_ = c.Error(err)
		detail = "an unexpected error occurred"
	}

	c.AbortWithStatusJSON(status, gin.H{
		"code":   rich.TextCode,
		"detail": detail,
	})
}
