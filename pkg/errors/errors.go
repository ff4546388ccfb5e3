package messenger_errors

import (
	"errors"
)

// Common errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Error carries a caller-facing message while matching one of the sentinel kinds
// above through errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Invalid reports a missing or malformed required input.
func Invalid(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// NotFound reports an absent update target.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrAlreadyExists, Message: msg}
}

func MethodNotAllowed() error {
	return &Error{Kind: ErrMethodNotAllowed, Message: "Method not allowed"}
}
