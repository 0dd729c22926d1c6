package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ErrInvalidCredentials login failure; surfaced as 401 rather than 400
var ErrInvalidCredentials = &Error{Kind: ErrInvalidOperation, Message: "invalid email or password"}

// Error a domain error carrying a client-facing message
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

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error, passing other errors through
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}
