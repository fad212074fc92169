// Package errors provides consistent error types for breakminder.
// It defines two main categories: ValidationError (bad input, rejected at
// the boundary) and TransientError (infrastructure failures that may be
// retried or degraded around).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrUnknownKind        = errors.New("unknown reminder kind")
	ErrIntervalOutOfRange = errors.New("reminder interval out of range")
	ErrMinutesOutOfRange  = errors.New("timer minutes out of range")
	ErrNoTimer            = errors.New("no timer armed")
	ErrNoClients          = errors.New("no client attached")
	ErrDaemonNotRunning   = errors.New("daemon is not running")
)

// ValidationError represents rejected input. The requested change is not
// applied and the offending value is reported, never silently clamped.
type ValidationError struct {
	Field   string // The field that caused the error
	Value   string // The invalid value
	Message string // What is wrong with it
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Value)
	}
	return e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsValidation returns true if err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransientError represents an infrastructure failure (store read/write,
// undeliverable message) that callers either retry with a bounded budget or
// swallow as best-effort.
type TransientError struct {
	Op    string // The operation that failed
	Cause error  // The underlying error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// NewTransientError creates a new TransientError.
func NewTransientError(op string, cause error) *TransientError {
	return &TransientError{Op: op, Cause: cause}
}

// IsTransient returns true if err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// WithContext wraps an error with additional context message.
func WithContext(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
