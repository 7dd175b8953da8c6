package domain

import (
	"errors"
	"fmt"
)

// Code classifies a business failure. The HTTP layer maps it to a status.
type Code string

const (
	CodeNotFound           Code = "RESOURCE_NOT_FOUND"
	CodeAlreadyExists      Code = "RESOURCE_ALREADY_EXISTS"
	CodeDeleteForbidden    Code = "DELETE_FORBIDDEN"
	CodeOperationForbidden Code = "OPERATION_FORBIDDEN"
	CodeInvalidData        Code = "INVALID_DATA"
	CodeConstraint         Code = "CONSTRAINT_VIOLATION"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Error is a classified business error returned by the service layer.
type Error struct {
	Code    Code
	Message string
	Details map[string]string // Field-level violations, if any
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return NewError(CodeNotFound, format, args...)
}

func AlreadyExists(format string, args ...any) *Error {
	return NewError(CodeAlreadyExists, format, args...)
}

func DeleteForbidden(format string, args ...any) *Error {
	return NewError(CodeDeleteForbidden, format, args...)
}

func InvalidData(format string, args ...any) *Error {
	return NewError(CodeInvalidData, format, args...)
}

func ConstraintViolation(format string, args ...any) *Error {
	return NewError(CodeConstraint, format, args...)
}

// Internal wraps an unexpected failure. Its message is never shown to clients.
func Internal(err error, format string, args ...any) *Error {
	e := NewError(CodeInternal, format, args...)
	e.Err = err
	return e
}

// CodeOf returns the classification of err, or CodeInternal when err is not
// a *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given classification.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
