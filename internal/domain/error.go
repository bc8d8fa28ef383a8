package domain

import (
	"errors"
	"fmt"
)

// Machine-readable error codes. The transport layer maps each code to an
// HTTP status; everything that isn't a *Error surfaces as EINTERNAL.
const (
	EINVALID      = "invalid"         // 400 bad input
	EUNAUTHORIZED = "unauthorized"    // 401 missing or bad identity
	EFORBIDDEN    = "forbidden"       // 403 identity known, action denied
	ENOTFOUND     = "not_found"       // 404
	ECONFLICT     = "conflict"        // 409 state raced (stock depleted at commit, etc.)
	EINTERNAL     = "internal"        // 500 details stay in logs
	ENOTIMPL      = "not_implemented" // 501
)

// Error is the application error type. Message is safe to return to
// clients; Op and Err exist for logs only.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode returns the code carried by err, "" for nil, and EINTERNAL
// for any error that is not a *Error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

const internalMessage = "An internal error occurred. Please try again later."

// ErrorMessage returns a message suitable for API responses. Internal and
// unrecognized errors get a generic message so details never leak.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return internalMessage
}

// ErrorOp returns the operation recorded on err, if any.
func ErrorOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Errorf builds a *Error with a formatted message.
// Example: domain.Errorf(domain.EINVALID, "cart.add_item", "invalid quantity: %d", qty)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// NotFound builds an ENOTFOUND error naming the missing resource.
func NotFound(op, resource, identifier string) error {
	return Errorf(ENOTFOUND, op, "%s not found: %s", resource, identifier)
}

// Invalid builds an EINVALID error.
func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Internal wraps err as EINTERNAL. The message is kept for logs; clients
// see the generic internal-error message instead.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
