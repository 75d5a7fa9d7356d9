package novelsrc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT       = "conflict"
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("novelsrc error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var cfgErr *ConfigValidationError
	if errors.As(err, &cfgErr) {
		return EINVALID
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var cfgErr *ConfigValidationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ConfigValidationError reports a source configuration that cannot be used.
// Placeholder is set when a URL template lacks a required placeholder and
// empty when a required field is missing or malformed.
type ConfigValidationError struct {
	Field       string
	Placeholder string
	Reason      string
}

// Error implements the error interface.
func (e *ConfigValidationError) Error() string {
	switch {
	case e.Placeholder != "":
		return fmt.Sprintf("%s: missing placeholder %s", e.Field, e.Placeholder)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s: required", e.Field)
	}
}
