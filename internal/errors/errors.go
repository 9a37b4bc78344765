// Package errors provides the typed failures surfaced by the generator and world model.
// Nothing in the core retries; callers branch on Kind.
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of error.
type Kind string

const (
	// KindConfiguration indicates bad generation parameters, rejected before any work runs.
	KindConfiguration Kind = "configuration"
	// KindInvariantViolation indicates a cubic coordinate whose components do not sum to zero.
	KindInvariantViolation Kind = "invariant_violation"
	// KindInvalidState indicates an operation invoked in a phase that does not allow it.
	KindInvalidState Kind = "invalid_state"
	// KindCyclicReference indicates an orbit parent chain that loops back on itself.
	KindCyclicReference Kind = "cyclic_reference"
	// KindNotFound indicates an identifier that does not exist in its collection.
	KindNotFound Kind = "not_found"
	// KindStorage indicates a failure in the universe archive.
	KindStorage Kind = "storage"
)

// Error is the base error type for hexgalaxy failures.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configurationf creates a configuration error with formatting.
func Configurationf(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Invariantf creates an invariant violation with formatting.
func Invariantf(format string, args ...any) error {
	return &Error{Kind: KindInvariantViolation, Message: fmt.Sprintf(format, args...)}
}

// InvalidStatef creates an invalid state error with formatting.
func InvalidStatef(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// CyclicReferencef creates a cyclic reference error with formatting.
func CyclicReferencef(format string, args ...any) error {
	return &Error{Kind: KindCyclicReference, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not found error with formatting.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// WrapStorage wraps an error as a storage error.
func WrapStorage(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// GetKind returns the kind of an error. Errors not created by this package
// report an empty Kind.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err, or any error it wraps, has the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}
