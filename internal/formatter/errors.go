package formatter

import (
	"errors"
	"fmt"
)

var (
	// ErrAbend marks an unrecoverable condition: an unknown operation type,
	// or a primary key update while handling is configured to abend. The
	// owning pipeline is expected to halt, not retry.
	ErrAbend = errors.New("formatter abend")
	// ErrCoerce marks a malformed raw value that could not be coerced to
	// its declared type. No partial output is emitted.
	ErrCoerce = errors.New("value coercion failed")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error  // The underlying sentinel error
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// newError creates a new formatter error with context
func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}
