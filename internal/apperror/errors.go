// Package apperror provides the typed error taxonomy for taskhub. Every
// error that crosses the service boundary carries a machine-readable kind,
// an HTTP-equivalent status code, and a message safe to show to the client.
//
// Raw database or infrastructure errors must never reach the client. Repos
// translate them once (see internal/repo/postgres) and everything above the
// repo layer only ever sees these types.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidID          Kind = "INVALID_ID"
	KindInvalidEmail       Kind = "INVALID_EMAIL"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindEmptyUpdate        Kind = "EMPTY_UPDATE"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindEmailExists        Kind = "EMAIL_EXISTS"
	KindTaskExists         Kind = "TASK_EXISTS"
	KindConflict           Kind = "CONFLICT"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindInvalidReference   Kind = "INVALID_REFERENCE"
	KindDatabase           Kind = "DATABASE_ERROR"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Error is the base type for all domain errors.
type Error struct {
	// Code is the HTTP-equivalent status (e.g. 404, 400, 500).
	Code int `json:"-"`

	// Kind is the machine-readable classifier.
	Kind Kind `json:"kind"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed.
	Internal error `json:"-"`
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Kind, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Internal
}

// Extensions surfaces the kind to GraphQL clients under the standard
// "extensions" key of an operation error.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// KindOf extracts the kind from an error, or "" when it is not one of ours.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// --- Constructors ---

func NewInvalidID() *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindInvalidID, Message: "Invalid id"}
}

func NewInvalidEmail() *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindInvalidEmail, Message: "Invalid email format"}
}

func NewValidation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

func NewEmptyUpdate() *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindEmptyUpdate, Message: "At least one field must be provided for update"}
}

func NewUnauthenticated() *Error {
	return &Error{Code: http.StatusUnauthorized, Kind: KindUnauthenticated, Message: "Not authenticated. Please log in."}
}

func NewForbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Kind: KindForbidden, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func NewEmailExists() *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindEmailExists, Message: "Email already exists"}
}

func NewTaskExists() *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindTaskExists, Message: "Task with this title already exists for this user"}
}

func NewConflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Kind: KindConflict, Message: message}
}

// NewInvalidCredentials is deliberately undifferentiated so login failures
// never reveal whether the email exists.
func NewInvalidCredentials() *Error {
	return &Error{Code: http.StatusUnauthorized, Kind: KindInvalidCredentials, Message: "Invalid email or password"}
}

func NewInvalidToken(err error) *Error {
	return &Error{Code: http.StatusUnauthorized, Kind: KindInvalidToken, Message: "Invalid or expired token", Internal: err}
}

func NewInvalidReference(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindInvalidReference, Message: message}
}

// NewDatabase wraps an unclassified persistence failure. The client only
// ever sees the generic message.
func NewDatabase(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Kind: KindDatabase, Message: "Database error", Internal: err}
}

// NewInternal wraps a non-persistence failure (hashing, signing). The real
// error is kept for logging only.
func NewInternal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "An unexpected error occurred. Please try again.", Internal: err}
}
