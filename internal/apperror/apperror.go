package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping.
type Code string

const (
	// CodeNotFound covers both absent rows and rows owned by another user.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized indicates a missing or invalid identity.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeInvalidRequest indicates malformed or invalid input.
	CodeInvalidRequest Code = "INVALID_REQUEST"
	// CodeConflict indicates a uniqueness violation.
	CodeConflict Code = "CONFLICT"
	// CodeUpstream indicates a third-party service failed.
	CodeUpstream Code = "UPSTREAM"
	// CodeInternal indicates an internal system error.
	CodeInternal Code = "INTERNAL"
)

// FieldErrors maps a request field path (e.g. "ingredients[0].quantity") to its messages.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Error is the application error carried from services to handlers.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Fields  FieldErrors
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps cause with a code and message.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation creates an INVALID_REQUEST error carrying per-field messages.
func Validation(fields FieldErrors) *Error {
	return &Error{Code: CodeInvalidRequest, Message: "validation failed", Fields: fields}
}

// NotFound is the single not-found error returned for absent and foreign ids alike.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
