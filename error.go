package madara

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// EMISSING reports a mandatory field that could not be derived from a document.
	EMISSING = "missing_field"

	// ECONTRACT reports a required selector that matched nothing in a document.
	ECONTRACT = "malformed_contract"

	// EDATE reports date text that does not conform to the configured format.
	EDATE = "invalid_date"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("madara error: code=%s message=%s", e.Code, e.Message)
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
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// IsRequiredFieldError reports whether err aborted an extraction because a
// mandatory value was absent, either as a missing field or as a selector
// that matched nothing.
func IsRequiredFieldError(err error) bool {
	switch ErrorCode(err) {
	case EMISSING, ECONTRACT:
		return true
	}
	return false
}
