package services

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the error taxonomy. Handlers map these to HTTP statuses
// with errors.Is; services attach the human-readable message.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func notFound(format string, args ...interface{}) error {
	return &serviceError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &serviceError{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &serviceError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &serviceError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...interface{}) error {
	return &serviceError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}
