package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. NotFound and Invariant are always
// recoverable at the caller and reported as structured rejections; Fault is
// logged with context and surfaced as an opaque failure, never retried.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindInvariant
	KindAuthorization
	KindFault
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_error"
	case KindInvariant:
		return "invariant_violation"
	case KindAuthorization:
		return "authorization_error"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Error carries a kind, a machine-usable code and a human-readable message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Invariant(code, format string, args ...any) *Error {
	return &Error{Kind: KindInvariant, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Authorization(code, format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Fault wraps an unexpected storage or collaborator failure.
func Fault(err error, format string, args ...any) *Error {
	return &Error{Kind: KindFault, Code: "fault", Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf extracts the machine-usable code from err, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus maps an error to an HTTP status code:
// missing prerequisite resource -> 404, invariant violation or bad input -> 400,
// forbidden actor -> 403, anything else -> 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvariant:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
