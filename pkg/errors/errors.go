package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Code classifies a failure and decides how it is rendered over HTTP.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata is the rendering policy for a Code. Codes that expose their
// message return the caller-supplied text; the rest fall back to
// PublicMessage so driver and network errors never reach clients.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	ExposeMessage  bool
	DetailsAllowed bool
}

// client errors echo their message; server errors are retryable and opaque.
func clientFault(status int, fallback string, details bool) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: fallback, ExposeMessage: true, DetailsAllowed: details}
}

func serverFault(status int, fallback string, details bool) Metadata {
	return Metadata{HTTPStatus: status, PublicMessage: fallback, Retryable: true, DetailsAllowed: details}
}

var policies = map[Code]Metadata{
	CodeValidation:   clientFault(http.StatusBadRequest, "validation failed", true),
	CodeUnauthorized: clientFault(http.StatusUnauthorized, "authentication required", false),
	CodeForbidden:    clientFault(http.StatusForbidden, "access denied", false),
	CodeNotFound:     clientFault(http.StatusNotFound, "resource not found", false),
	CodeConflict:     clientFault(http.StatusConflict, "conflict detected", true),
	CodeRateLimit:    clientFault(http.StatusTooManyRequests, "rate limit exceeded", false),
	CodeInternal:     serverFault(http.StatusInternalServerError, "internal server error", false),
	CodeDependency:   serverFault(http.StatusServiceUnavailable, "dependency unavailable", true),
}

// MetadataFor treats unknown codes as CodeInternal.
func MetadataFor(code Code) Metadata {
	if meta, ok := policies[code]; ok {
		return meta
	}
	return policies[CodeInternal]
}

// Error carries a Code, a message and an optional cause from the services
// to the HTTP layer.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and message to err. A nil err behaves like New.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// PublicMessage is the text safe to return to clients.
func (e *Error) PublicMessage() string {
	meta := MetadataFor(e.Code())
	if msg := e.Message(); meta.ExposeMessage && msg != "" {
		return msg
	}
	return meta.PublicMessage
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails sets structured details in place and returns e for chaining.
func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

// Error renders "[CODE] message: cause".
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("[" + string(e.code) + "] " + e.message)
	if e.cause != nil {
		b.WriteString(": " + e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As finds the outermost *Error in err's chain.
func As(err error) *Error {
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// Retryable reports whether a client may retry the failed call unchanged.
// Untyped errors are treated as internal.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	return MetadataFor(As(err).Code()).Retryable
}
