// Package apperr defines the error kinds surfaced by the back office core.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of its message
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindInvalidState      Kind = "INVALID_STATE"
	KindInvalidRange      Kind = "INVALID_RANGE"
	KindConflict          Kind = "CONFLICT"
	KindInternal          Kind = "INTERNAL"
)

// Error is a typed failure with a human-readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
// regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
	ErrInvalidState      = &Error{Kind: KindInvalidState, Message: "operation not allowed in current state"}
	ErrInvalidRange      = &Error{Kind: KindInvalidRange, Message: "invalid date range"}
	ErrConflict          = &Error{Kind: KindConflict, Message: "conflict"}
)

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func InvalidInput(format string, args ...interface{}) *Error {
	return newf(KindInvalidInput, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newf(KindInsufficientStock, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return newf(KindInvalidState, format, args...)
}

func InvalidRange(format string, args ...interface{}) *Error {
	return newf(KindInvalidRange, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Wrap attaches a cause to a new typed error
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	e := newf(kind, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
