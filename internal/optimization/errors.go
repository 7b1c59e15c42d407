package optimization

import (
	"errors"
	"fmt"
)

// Kind classifies an optimization error.
type Kind int

const (
	// KindConfig marks a configuration error surfaced at build time:
	// dimension mismatch, empty bounds, population below a method's minimum.
	// Never recovered.
	KindConfig Kind = iota
	// KindRunExhausted marks a run where every candidate of a generation
	// failed to evaluate.
	KindRunExhausted
	// KindCallback marks a user callback failure; the run aborts and the
	// partial report is preserved.
	KindCallback
)

// Error represents an optimization error with context that can be wrapped
// with additional information.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// NewConfigError creates a configuration error with the given message.
func NewConfigError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// NewConfigErrorf creates a configuration error with a formatted message.
func NewConfigErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// NewRunExhaustedError creates an error marking a generation in which no
// candidate produced a valid fitness.
func NewRunExhaustedError(gen int) *Error {
	return &Error{
		Kind:    KindRunExhausted,
		Message: fmt.Sprintf("generation %d: every candidate evaluation failed", gen),
	}
}

// WrapCallbackError wraps a user callback failure. Returns nil if err is nil.
func WrapCallbackError(err error, gen int) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    KindCallback,
		Message: fmt.Sprintf("callback failed at generation %d", gen),
		Err:     err,
	}
}

// IsKind reports whether err is an optimization *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
