// Package errors is the coded error type shared by every layer
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and for the wire
// values are part of the API; append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is an unclassified failure
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a panic recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is a dependency that is down or not configured
	ErrorCodeUnavailable
	// ErrorCodeTooManyRequests is rate limiting
	ErrorCodeTooManyRequests
	// ErrorCodeConflict is a state conflict other than a raw unique violation
	ErrorCodeConflict
	// ErrorCodeUnauthorized is a missing or bad credential
	ErrorCodeUnauthorized
	// ErrorCodeForbidden is an authenticated caller without the needed role
	ErrorCodeForbidden
	// ErrorCodeInvalidArgument is input that is well formed but not acceptable
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is input that failed field validation
	ErrorCodeValidation
	// ErrorCodeJSON is a body that is not the expected JSON
	ErrorCodeJSON
	// ErrorCodeNotFound is a missing resource, or one the caller may not know exists
	ErrorCodeNotFound
	// ErrorCodeDuplicateKey is a unique constraint violation
	ErrorCodeDuplicateKey
	// ErrorCodeDB is any other database failure
	ErrorCodeDB
	// ErrorCodeGone is a resource that existed but can no longer be used, e.g. an expired invitation
	ErrorCodeGone
)

var codeInfo = map[ErrorCode]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests: {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:    {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:       {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
	ErrorCodeGone:            {"gone", http.StatusGone},
}

// String returns the snake_case name of the code
func (c ErrorCode) String() string {
	if i, ok := codeInfo[c]; ok {
		return i.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps a code to its HTTP status; unmapped codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if i, ok := codeInfo[c]; ok {
		return i.status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the bare not-found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a caller-facing message, an optional field and op, and the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON body of a failed response
type Wire struct {
	Code    ErrorCode `json:"code"`
	Reason  string    `json:"reason"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig == nil {
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

// Unwrap exposes the cause to errors.Is/As
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if any
func (e *Error) Op() string { return e.op }

// ToWire renders the caller-facing part; the cause is never exposed
func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Reason: e.code.String(), Message: e.msg, Field: e.field}
}

// WireFrom renders any error; foreign errors become unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Reason: ErrorCodeUnknown.String(), Message: err.Error()}
}

// Root walks Unwrap to the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, or Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return err != nil && CodeOf(err) == code }

// HTTPStatus maps any error to an HTTP status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// HTTP returns the status and body for err, or 200 and an empty body for nil
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

func (e *Error) clone() *Error { c := *e; return &c }

// WithField returns a copy of err tagged with the input field; foreign errors pass through
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := e.clone()
		c.field = field
		return c
	}
	return err
}

// WithOp returns a copy of err tagged with an operation label; foreign errors pass through
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := e.clone()
		c.op = op
		return c
	}
	return err
}

// New builds an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap classifies orig under code with a caller-facing message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf is Wrap that returns nil for a nil err
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// NotFoundf builds a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf builds a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf builds a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf builds an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Forbiddenf builds a forbidden error
func Forbiddenf(format string, a ...any) error { return Newf(ErrorCodeForbidden, format, a...) }

// Conflictf builds a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// Gonef builds a gone error
func Gonef(format string, a ...any) error { return Newf(ErrorCodeGone, format, a...) }

// Unavailablef builds an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Internalf builds an unknown error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
