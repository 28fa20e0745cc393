package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error raised inside the request pipeline.
// The Router maps every kind to an error envelope and an HTTP status.
type Kind uint8

const (
	// KindInternal is any failure that does not fit another kind.
	KindInternal Kind = iota
	// KindValidation is bad or missing caller input.
	KindValidation
	// KindNotFound is a request for a route that is not registered.
	KindNotFound
	// KindUnauthorized is a protected route reached without a valid identity.
	KindUnauthorized
	// KindOperational is a downstream operation that failed or changed nothing.
	KindOperational
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindOperational:
		return "operational"
	default:
		return "internal"
	}
}

// Status returns the default HTTP status for the kind.
// Not-found maps to a generic client error rather than 404.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindNotFound, KindOperational:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single error type middleware and handlers raise to signal
// a classified failure. It carries everything the Router needs to build
// an error envelope.
type Error struct {
	// Err is the underlying cause (logged, never shown to the client).
	Err error

	// Message is the client-facing message.
	Message string

	// Kind selects the envelope mapping.
	Kind Kind

	// Code overrides the kind's default HTTP status when non-zero.
	Code int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status the error maps to.
func (e *Error) StatusCode() int {
	if e.Code != 0 {
		return e.Code
	}
	return e.Kind.Status()
}

// ErrorOption configures an Error.
type ErrorOption func(*Error)

// WithStatusCode overrides the HTTP status derived from the error kind.
func WithStatusCode(code int) ErrorOption {
	return func(e *Error) {
		e.Code = code
	}
}

// WithCause attaches the underlying error.
func WithCause(err error) ErrorOption {
	return func(e *Error) {
		e.Err = err
	}
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, message string, opts ...ErrorOption) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors, one per kind.

func ErrValidation(message string, opts ...ErrorOption) *Error {
	return NewError(KindValidation, message, opts...)
}

func ErrUnauthorized(message string, opts ...ErrorOption) *Error {
	return NewError(KindUnauthorized, message, opts...)
}

func ErrOperational(message string, opts ...ErrorOption) *Error {
	return NewError(KindOperational, message, opts...)
}

func ErrInternal(message string, opts ...ErrorOption) *Error {
	return NewError(KindInternal, message, opts...)
}

// ErrRouteNotFound builds the error returned for an unregistered route.
func ErrRouteNotFound(method, path string) *Error {
	return NewError(KindNotFound, fmt.Sprintf("Route not found: %s %s", method, path))
}

// AsError extracts an *Error from the chain. Returns nil if there is none.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e := AsError(err)
	return e != nil && e.Kind == kind
}

// PanicError represents a panic recovered at the dispatch boundary.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// classify converts any error into an *Error with a client-facing message.
// Unclassified errors become internal errors that keep the underlying
// message for diagnostics.
func classify(err error) *Error {
	if e := AsError(err); e != nil {
		return e
	}
	return ErrInternal("Internal Server Error: "+err.Error(), WithCause(err))
}
