package domain

import (
	"errors"
	"fmt"
)

// Error kinds. DomainError wraps exactly one of them so callers can test with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("resource conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternal      = errors.New("internal error")
)

// 对外暴露的错误码，handler 原样写入响应
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternal      = "INTERNAL_ERROR"
)

// DomainError pairs a client-safe message with its kind and, for internal
// errors, the cause that only goes to logs.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

// UserMessage is the part of the error that may reach a client.
func (e *DomainError) UserMessage() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

func newError(code string, kind error, message string) error {
	return &DomainError{Code: code, Message: message, Err: kind}
}

// NewNotFoundError reports that resourceType named name does not exist or is not visible.
func NewNotFoundError(resourceType, name string) error {
	return newError(CodeNotFound, ErrNotFound, fmt.Sprintf("%s '%s' not found", resourceType, name))
}

func NewAlreadyExistsError(resourceType, name string) error {
	return newError(CodeAlreadyExists, ErrAlreadyExists, fmt.Sprintf("%s '%s' already exists", resourceType, name))
}

func NewInvalidInputError(message string) error {
	return newError(CodeInvalidInput, ErrInvalidInput, message)
}

func NewUnauthorizedError(message string) error {
	return newError(CodeUnauthorized, ErrUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return newError(CodeForbidden, ErrForbidden, message)
}

func NewConflictError(message string) error {
	return newError(CodeConflict, ErrConflict, message)
}

// NewInternalError keeps err in the chain for logs; clients only see a generic message.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    CodeInternal,
		Message: "an internal error occurred",
		Err:     fmt.Errorf("%w: %w", ErrInternal, err),
	}
}

func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }
func IsInvalidInput(err error) bool  { return errors.Is(err, ErrInvalidInput) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsUnauthorized(err error) bool  { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool     { return errors.Is(err, ErrForbidden) }
func IsInternalError(err error) bool { return errors.Is(err, ErrInternal) }
