// Package apperr defines the typed failures the catalog and order ledger
// report to their callers. Transport code maps kinds to HTTP statuses;
// the services themselves never touch net/http.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind string

const (
	// KindValidation: missing or malformed required input.
	KindValidation Kind = "validation"
	// KindNotFound: a referenced entity does not exist.
	KindNotFound Kind = "not_found"
	// KindConflict: a uniqueness constraint would be violated.
	KindConflict Kind = "conflict"
	// KindInvalidState: the operation is not permitted for the entity's
	// current lifecycle state.
	KindInvalidState Kind = "invalid_state"
	// KindInsufficientStock: the mutation would drive a stock counter
	// negative.
	KindInsufficientStock Kind = "insufficient_stock"
)

// Error is a structured, per-request failure. All service operations
// return either nil or an *Error (possibly wrapped).
type Error struct {
	Kind    Kind
	Message string
	// Fields carries field-level detail for validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ── Constructors ─────────────────────────────────────────────────────────────

// Validation builds a validation error from a field→message map.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Missing required fields", Fields: fields}
}

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent entity, e.g. apperr.NotFound("blanket model").
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Conflictf reports a uniqueness violation.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidStatef reports a forbidden lifecycle transition.
func InvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStock reports that a decrement would go below zero.
func InsufficientStock(message string) *Error {
	return &Error{Kind: KindInsufficientStock, Message: message}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// KindOf extracts the Kind from err, unwrapping as needed.
// Returns "" for non-domain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsValidation(err error) bool        { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool          { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool          { return KindOf(err) == KindConflict }
func IsInvalidState(err error) bool      { return KindOf(err) == KindInvalidState }
func IsInsufficientStock(err error) bool { return KindOf(err) == KindInsufficientStock }

// HTTPStatus maps a domain error to the status the API responds with.
// Non-domain errors map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState, KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
