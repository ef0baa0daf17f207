package handler

import (
	"errors"
	"io"
	"strconv"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/middleware"
	"account-book/internal/service"

	"github.com/gin-gonic/gin"
)

// currentIdentity returns the caller set by the auth middleware.
func currentIdentity(c *gin.Context) (auth.Identity, error) {
	ident, ok := middleware.Identity(c)
	if !ok {
		return auth.Identity{}, apperr.Unauthenticated(apperr.ReasonMissing)
	}
	return ident, nil
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidParameter(name, "must be a positive integer")
	}
	return uint(id), nil
}

// queryUint parses an optional id parameter; absent means 0.
func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidParameter(name, "must be a non-negative integer")
	}
	return uint(v), nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidParameter(name, "must be an integer")
	}
	return v, nil
}

// listParams reads search, sort, status, offset and limit.
func listParams(c *gin.Context) (service.ListParams, error) {
	offset, err := queryInt(c, "offset")
	if err != nil {
		return service.ListParams{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return service.ListParams{}, err
	}
	return service.ListParams{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Status: c.Query("status"),
		Offset: offset,
		Limit:  limit,
	}, nil
}

// bindJSON decodes the body into req. An empty body leaves req untouched
// so the service reports the first missing field.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return apperr.InvalidParameter("body", "malformed JSON")
	}
	return nil
}
