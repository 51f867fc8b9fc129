package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its HTTP mapping.
type Kind string

const (
	KindValidation             Kind = "validation"
	KindNotFound               Kind = "not_found"
	KindForbidden              Kind = "forbidden"
	KindConflict               Kind = "conflict"
	KindLimitExceeded          Kind = "limit_exceeded"
	KindCapacityExceeded       Kind = "capacity_exceeded"
	KindTransactionUnsupported Kind = "transaction_unsupported"
	KindUnexpected             Kind = "unexpected"
)

// Error is the application error carried from services to handlers.
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	// Details is an optional machine-readable payload, such as failing
	// fields of a validation error.
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by code so that wrapped copies produced by Wrap still
// satisfy errors.Is against the original sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, HTTPStatus: statusFor(kind)}
}

// WithStatus returns a copy of e answering with a different HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	cp := *sentinel
	cp.Err = cause
	return &cp
}

// Unexpected wraps an arbitrary error as a 500.
func Unexpected(err error) *Error {
	return &Error{
		Kind:       KindUnexpected,
		Code:       "INTERNAL_ERROR",
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// From extracts the application error from err. Unknown errors become Unexpected.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Unexpected(err)
}

// DetailsOf returns the first non-nil Details found along err's chain.
func DetailsOf(err error) any {
	for err != nil {
		var ae *Error
		if !errors.As(err, &ae) {
			return nil
		}
		if ae.Details != nil {
			return ae.Details
		}
		err = ae.Err
	}
	return nil
}

// IsKind reports whether err carries an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindLimitExceeded, KindCapacityExceeded:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Shared sentinels.
var (
	ErrValidation = New(KindValidation, "VALIDATION_ERROR", "Invalid request")

	// ErrTransactionUnsupported is internal: it triggers the non-transactional
	// hire path and is never written to a response.
	ErrTransactionUnsupported = New(KindTransactionUnsupported, "TRANSACTION_UNSUPPORTED", "Multi-document transactions are not supported by the store")
)
