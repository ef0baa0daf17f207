// Package apperr defines the error taxonomy shared by the verifier, the
// ownership resolver, the lifecycle state machine and the list services.
// Every error is a go-errors envelope carrying an HTTP status and a stable
// text code the transport layer reports to clients.
package apperr

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingRequired    = "MISSING_REQUIRED"
	CodeInvalidParameter   = "INVALID_PARAMETER"
	CodeMissingParameter   = "MISSING_PARAMETER"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeNotInParent        = "NOT_IN_PARENT"
	CodeAlreadyDeleted     = "ALREADY_DELETED"
	CodeAlreadyActive      = "ALREADY_ACTIVE"
	CodeDuplicate          = "DUPLICATE"
	CodeInternal           = "INTERNAL"
)

// Reason says why a credential was rejected. It is kept in metadata only;
// clients see the same message for every reason.
type Reason string

const (
	ReasonMissing        Reason = "missing"
	ReasonMalformed      Reason = "malformed"
	ReasonExpired        Reason = "expired"
	ReasonUnknownSubject Reason = "unknown_subject"
)

func clientError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return goerrors.New(message, category).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode)
}

// Unauthenticated rejects a request before any entity logic runs.
func Unauthenticated(reason Reason) error {
	err := goerrors.New("authentication credentials were not provided or are invalid", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(CodeUnauthenticated)
	err.WithMetadata(map[string]any{"reason": string(reason)})
	return err
}

// InvalidCredentials is returned by login when email or password do not match.
func InvalidCredentials() error {
	return goerrors.New("email or password is incorrect", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(CodeInvalidCredentials)
}

// MissingRequired reports an absent mandatory field on a write operation.
func MissingRequired(field string) error {
	err := clientError(fmt.Sprintf("%s is required", field), goerrors.CategoryBadInput, CodeMissingRequired)
	err.WithMetadata(map[string]any{"field": field})
	return err
}

// InvalidParameter reports a present but unusable value.
func InvalidParameter(field, detail string) error {
	err := clientError(fmt.Sprintf("invalid %s: %s", field, detail), goerrors.CategoryBadInput, CodeInvalidParameter)
	err.WithMetadata(map[string]any{"field": field})
	return err
}

// MissingParameter reports an absent mandatory list parameter.
func MissingParameter(name string) error {
	err := clientError(fmt.Sprintf("%s parameter is required", name), goerrors.CategoryBadInput, CodeMissingParameter)
	err.WithMetadata(map[string]any{"parameter": name})
	return err
}

// NotFound reports an id with no stored entity.
func NotFound(kind string, id uint) error {
	err := clientError(fmt.Sprintf("%s %d does not exist", kind, id), goerrors.CategoryNotFound, CodeNotFound)
	err.WithMetadata(map[string]any{"kind": kind, "id": id})
	return err
}

// Forbidden reports an entity owned by another user. The id is not echoed.
func Forbidden(kind string) error {
	err := clientError(fmt.Sprintf("%s belongs to another user", kind), goerrors.CategoryAuthz, CodeForbidden)
	err.WithMetadata(map[string]any{"kind": kind})
	return err
}

// NotInParent reports a log that is not part of the book named in the request.
func NotInParent(logID, bookID uint) error {
	err := clientError(fmt.Sprintf("account book log %d does not belong to account book %d", logID, bookID), goerrors.CategoryBadInput, CodeNotInParent)
	err.WithMetadata(map[string]any{"log_id": logID, "book_id": bookID})
	return err
}

// AlreadyDeleted rejects a delete on a deleted entity.
func AlreadyDeleted(kind string, id uint) error {
	err := clientError(fmt.Sprintf("%s %d is already deleted", kind, id), goerrors.CategoryConflict, CodeAlreadyDeleted)
	err.WithMetadata(map[string]any{"kind": kind, "id": id})
	return err
}

// AlreadyActive rejects a restore on an in-use entity.
func AlreadyActive(kind string, id uint) error {
	err := clientError(fmt.Sprintf("%s %d is already in use", kind, id), goerrors.CategoryConflict, CodeAlreadyActive)
	err.WithMetadata(map[string]any{"kind": kind, "id": id})
	return err
}

// Duplicate reports a unique value already taken, e.g. an email on sign-up.
func Duplicate(field, value string) error {
	err := clientError(fmt.Sprintf("%s %q already exists", field, value), goerrors.CategoryConflict, CodeDuplicate)
	err.WithMetadata(map[string]any{"field": field})
	return err
}

// Internal wraps an unexpected failure, typically from the store.
func Internal(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(CodeInternal)
}

// From returns the go-errors envelope of err, mapping anything foreign to
// an internal error.
func From(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "an unexpected error occurred").
		WithCode(http.StatusInternalServerError).
		WithTextCode(CodeInternal)
}

// Is reports whether err carries the given text code.
func Is(err error, textCode string) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.TextCode == textCode
}

// ReasonOf returns the rejection reason of an Unauthenticated error.
func ReasonOf(err error) Reason {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Metadata == nil {
		return ""
	}
	r, _ := rich.Metadata["reason"].(string)
	return Reason(r)
}
