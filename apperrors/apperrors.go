// Package apperrors defines the error kinds surfaced to users of the tools.
//
// Every error returned from the builders carries one of the sentinel kinds, so
// callers branch with errors.Is and never on message text.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrInvalidDate    = errors.New("invalid date")
	ErrEmptySelection = errors.New("empty selection")
	ErrTooLong        = errors.New("too long")
	ErrNotFound       = errors.New("not found")
)

// Error is a user-facing failure. Message is safe to show to the user.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func MissingField(field string) error {
	return &Error{
		Kind:    ErrMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func InvalidURL(field string) error {
	return &Error{
		Kind:    ErrInvalidURL,
		Field:   field,
		Message: "Invalid URL format",
	}
}

func InvalidDate(field string) error {
	return &Error{
		Kind:    ErrInvalidDate,
		Field:   field,
		Message: fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field),
	}
}

func TooLong(field string, max int) error {
	return &Error{
		Kind:    ErrTooLong,
		Field:   field,
		Message: fmt.Sprintf("%s must be at most %d characters", field, max),
	}
}

func EmptySelection() error {
	return &Error{
		Kind:    ErrEmptySelection,
		Field:   "property_types",
		Message: "At least one property type must be selected",
	}
}

func NotFound(what string) error {
	return &Error{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", what),
	}
}

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrTooLong)
}
