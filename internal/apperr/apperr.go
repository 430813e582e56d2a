package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for callers that need to branch on the
// failure category instead of matching message strings.
type Kind string

const (
	Validation        Kind = "validation"         // malformed request body or field
	Forbidden         Kind = "forbidden"          // email domain policy violation
	WeakCredential    Kind = "weak_credential"    // password strength policy violation
	Conflict          Kind = "conflict"           // duplicate account or reused password
	InvalidCredential Kind = "invalid_credential" // bad login or bad email/otp pair, intentionally generic
	InvalidToken      Kind = "invalid_token"      // expired, malformed or forged token
	NotFound          Kind = "not_found"
	Infrastructure    Kind = "infrastructure" // store or mail relay failure
)

// Error is a status-coded error surfaced directly to the caller.
// Anything else reaching the handler boundary is treated as an
// internal error and hidden behind a generic 500 body.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case Forbidden:
		return http.StatusForbidden
	case Validation, WeakCredential, Conflict:
		// Conflict kept at 400 to match the public API contract
		return http.StatusBadRequest
	case InvalidCredential, InvalidToken:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err, or Infrastructure for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Infrastructure
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
