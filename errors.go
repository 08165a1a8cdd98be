package progdex

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Different codes are handled differently by the callers (e.g., EPARSE
// carries the raw model output for display, ECORRUPT requires explicit
// operator confirmation before the store may be reset).
const (
	ECONFLICT    = "conflict"
	ECORRUPT     = "corrupt"     // persisted database unparsable
	EFETCH       = "fetch"       // page fetch failed (transport or HTTP status)
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EPARSE       = "parse"       // extraction service returned malformed output
	EUNAVAILABLE = "unavailable" // extraction service unreachable or unauthorized
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string

	// Raw holds unparsed external output associated with the error, if any.
	// Set for EPARSE so callers can surface the model response for diagnosis.
	Raw string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("progdex error: code=%s message=%s", e.Code, e.Message)
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
	return "Internal error."
}

// ErrorRaw unwraps an application error and returns its raw payload, if any.
func ErrorRaw(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Raw
	}
	return ""
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
