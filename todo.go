package todo

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/todo/internal"
	"github.com/dmitrymomot/todo/pkg/cookie"
	"github.com/dmitrymomot/todo/pkg/logger"
)

// Type aliases - public API
type (
	// Router maps (method, path) pairs to handlers and runs middleware.
	Router = internal.Router

	// RouterOption configures the Router.
	RouterOption = internal.RouterOption

	// Route describes one registered route.
	Route = internal.Route

	// Response is the rendered outcome of one dispatch.
	Response = internal.Response

	// Request is the normalized view of one inbound request.
	Request = internal.Request

	// RequestInput holds the raw pieces used to build a Request.
	RequestInput = internal.RequestInput

	// UploadedFile describes one accepted file upload.
	UploadedFile = internal.UploadedFile

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Envelope is the JSON response body of every endpoint.
	Envelope = internal.Envelope

	// EnvelopeOption configures an Envelope at construction.
	EnvelopeOption = internal.EnvelopeOption

	// EnvelopeType is the "type" field of an Envelope.
	EnvelopeType = internal.EnvelopeType

	// Structure is the serializable form of an Envelope.
	Structure = internal.Structure

	// Error is a classified handler error.
	Error = internal.Error

	// ErrorKind classifies handler errors.
	ErrorKind = internal.Kind

	// ErrorOption configures an Error.
	ErrorOption = internal.ErrorOption

	// OperationResult is the outcome of a downstream write.
	OperationResult = internal.OperationResult

	// Extractor reads a value from the first source that has it.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from a request.
	ExtractorSource = internal.ExtractorSource

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// Envelope types.
const (
	TypeSuccess = internal.TypeSuccess
	TypeError   = internal.TypeError
	TypeInfo    = internal.TypeInfo
)

// Error kinds.
const (
	KindInternal     = internal.KindInternal
	KindValidation   = internal.KindValidation
	KindNotFound     = internal.KindNotFound
	KindUnauthorized = internal.KindUnauthorized
	KindOperational  = internal.KindOperational
)

// Constructors

// NewRouter creates an empty router.
//
// Example:
//
//	router := todo.NewRouter(
//	    todo.WithLogger(log),
//	    todo.WithMiddleware(middlewares.RequestID(), middlewares.RefreshIdentity(sessions)),
//	    todo.WithHandlers(handlers.NewAuth(st, sessions), handlers.NewTasks(st)),
//	)
func NewRouter(opts ...RouterOption) *Router {
	return internal.NewRouter(opts...)
}

// NewRequest builds a Request from raw inputs. Used by tests and by
// transports other than net/http.
func NewRequest(in RequestInput) *Request {
	return internal.NewRequest(in)
}

// Run serves handler over HTTP and blocks until SIGINT, SIGTERM or the
// context passed with WithContext ends.
//
// Example:
//
//	err := todo.Run(mux,
//	    todo.Address(":8080"),
//	    todo.Logger(log),
//	    todo.ShutdownHook(db.Shutdown(pool)),
//	)
func Run(handler http.Handler, opts ...RunOption) error {
	return internal.Run(handler, opts...)
}

// Router options

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) RouterOption {
	return internal.WithLogger(l)
}

// WithCookieManager sets the attributes of the session cookie.
func WithCookieManager(m *cookie.Manager) RouterOption {
	return internal.WithCookieManager(m)
}

// WithBodyLimit caps the request body size.
func WithBodyLimit(n int64) RouterOption {
	return internal.WithBodyLimit(n)
}

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) RouterOption {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) RouterOption {
	return internal.WithHandlers(h...)
}

// Before adapts a check into middleware that aborts with its error.
func Before(fn func(r *Request) error) Middleware {
	return internal.Before(fn)
}

// Run options

// Address sets the listen address. Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets how long in-flight requests get to finish.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the server starts listening.
// A failing hook aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stopped accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Envelopes

// Success builds a success envelope.
func Success(message string, opts ...EnvelopeOption) Envelope {
	return internal.Success(message, opts...)
}

// Fail builds an error envelope.
func Fail(message string, opts ...EnvelopeOption) Envelope {
	return internal.Fail(message, opts...)
}

// Info builds an info envelope.
func Info(message string, opts ...EnvelopeOption) Envelope {
	return internal.Info(message, opts...)
}

// AsType overrides the envelope type.
func AsType(t EnvelopeType) EnvelopeOption {
	return internal.AsType(t)
}

// WithStatus overrides the HTTP status of the envelope.
func WithStatus(code int) EnvelopeOption {
	return internal.WithStatus(code)
}

// Errors

// NewError creates a classified error.
func NewError(kind ErrorKind, message string, opts ...ErrorOption) *Error {
	return internal.NewError(kind, message, opts...)
}

// ErrValidation reports bad client input (400).
func ErrValidation(message string, opts ...ErrorOption) *Error {
	return internal.ErrValidation(message, opts...)
}

// ErrUnauthorized reports a missing or invalid identity (401).
func ErrUnauthorized(message string, opts ...ErrorOption) *Error {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrOperational reports a downstream operation that failed (400).
func ErrOperational(message string, opts ...ErrorOption) *Error {
	return internal.ErrOperational(message, opts...)
}

// ErrInternal reports an unexpected failure (500).
func ErrInternal(message string, opts ...ErrorOption) *Error {
	return internal.ErrInternal(message, opts...)
}

// WithCause attaches the underlying error.
func WithCause(err error) ErrorOption {
	return internal.WithCause(err)
}

// WithStatusCode overrides the HTTP status of the error.
func WithStatusCode(code int) ErrorOption {
	return internal.WithStatusCode(code)
}

// AsError extracts an *Error from the chain, or nil.
func AsError(err error) *Error {
	return internal.AsError(err)
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return internal.IsKind(err, kind)
}

// Parameters

// RequireString returns a non-blank string parameter.
func RequireString(r *Request, key, msg string) (string, error) {
	return internal.RequireString(r, key, msg)
}

// OptionalString returns a string parameter or "".
func OptionalString(r *Request, key string) string {
	return internal.OptionalString(r, key)
}

// RequireInt returns an integer parameter.
func RequireInt(r *Request, key, msg string) (int, error) {
	return internal.RequireInt(r, key, msg)
}

// OptionalInt returns an integer parameter or def when absent.
func OptionalInt(r *Request, key string, def int, msg string) (int, error) {
	return internal.OptionalInt(r, key, def, msg)
}

// RequireBool returns a boolean parameter.
func RequireBool(r *Request, key, msg string) (bool, error) {
	return internal.RequireBool(r, key, msg)
}

// RequireEmail returns a bare email address parameter.
func RequireEmail(r *Request, key, msg string) (string, error) {
	return internal.RequireEmail(r, key, msg)
}

// ResultOf builds an OperationResult from a row count and error.
func ResultOf(changed int64, err error) OperationResult {
	return internal.ResultOf(changed, err)
}

// EnsureOperationSucceeded fails when the operation failed or changed nothing.
func EnsureOperationSucceeded(res OperationResult, action string) error {
	return internal.EnsureOperationSucceeded(res, action)
}

// Extractors

// NewExtractor creates an Extractor over the given sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

var (
	// FromHeader reads a request header.
	FromHeader = internal.FromHeader
	// FromQuery reads a query parameter.
	FromQuery = internal.FromQuery
	// FromParam reads a route parameter.
	FromParam = internal.FromParam
	// FromBody reads a body field.
	FromBody = internal.FromBody
	// FromTransport reads a session transport value.
	FromTransport = internal.FromTransport
	// FromBearerToken reads the token of an "Authorization: Bearer" header.
	FromBearerToken = internal.FromBearerToken
)
