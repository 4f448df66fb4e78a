package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping (HTTP status, client handling).
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindTransport
)

// Error carries a Kind alongside a human-readable message and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Transport wraps a failed call against the backing store or remote service.
func Transport(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// Unknown wraps anything that does not fit the taxonomy.
func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Message: "unexpected error", Err: err}
}

// KindOf extracts the Kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsTransport(err error) bool  { return KindOf(err) == KindTransport }
