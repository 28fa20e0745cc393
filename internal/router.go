package internal

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"sync/atomic"

	"github.com/dmitrymomot/todo/pkg/cookie"
	"github.com/dmitrymomot/todo/pkg/logger"
)

// DefaultSuccessMessage is the message of envelopes built around plain
// handler results.
const DefaultSuccessMessage = "Success"

// DefaultBodyLimit caps request bodies read by ServeHTTP.
const DefaultBodyLimit int64 = 10 << 20

type routeKey struct {
	method string
	path   string
}

type route struct {
	handler     HandlerFunc
	middlewares []Middleware
}

// Route describes one registered route.
type Route struct {
	Method string
	Path   string
}

// Response is the outcome of one dispatch. Body holds the exact bytes
// ServeHTTP writes for the same request.
type Response struct {
	Header   http.Header
	Envelope Structure
	Body     []byte
	Status   int
}

// Router maps (method, path) pairs to handlers and runs the middleware
// pipeline. Paths are matched exactly after normalization.
//
// Routes and global middleware must be registered before the first
// dispatch; the table is read-only afterwards and safe for concurrent use.
type Router struct {
	routes    map[routeKey]route
	logger    *slog.Logger
	cookies   *cookie.Manager
	global    []Middleware
	bodyLimit int64
	started   atomic.Bool
}

// RouterOption configures the Router.
type RouterOption func(*Router)

// WithLogger sets the logger for dispatch failures.
func WithLogger(l *slog.Logger) RouterOption {
	return func(rt *Router) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithCookieManager sets the cookie attributes of the session transport
// created by ServeHTTP.
func WithCookieManager(m *cookie.Manager) RouterOption {
	return func(rt *Router) {
		if m != nil {
			rt.cookies = m
		}
	}
}

// WithBodyLimit caps the request body size read by ServeHTTP.
func WithBodyLimit(n int64) RouterOption {
	return func(rt *Router) {
		if n > 0 {
			rt.bodyLimit = n
		}
	}
}

// WithMiddleware appends global middleware.
func WithMiddleware(mw ...Middleware) RouterOption {
	return func(rt *Router) {
		rt.global = append(rt.global, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) RouterOption {
	return func(rt *Router) {
		rt.Handle(h...)
	}
}

// NewRouter creates an empty Router.
func NewRouter(opts ...RouterOption) *Router {
	rt := &Router{
		routes:    make(map[routeKey]route),
		logger:    logger.NewNope(),
		cookies:   cookie.New(),
		bodyLimit: DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Register adds a route. Method and path are normalized the same way
// requests are, and a later registration for the same pair replaces the
// earlier one.
func (rt *Router) Register(method, path string, h HandlerFunc, mw ...Middleware) {
	rt.mustBeOpen()
	if h == nil {
		panic(fmt.Sprintf("router: nil handler for %s %s", method, path))
	}
	key := routeKey{method: NormalizeMethod(method), path: NormalizePath(path)}
	rt.routes[key] = route{handler: h, middlewares: slices.Clone(mw)}
}

func (rt *Router) GET(path string, h HandlerFunc, mw ...Middleware) {
	rt.Register(http.MethodGet, path, h, mw...)
}

func (rt *Router) POST(path string, h HandlerFunc, mw ...Middleware) {
	rt.Register(http.MethodPost, path, h, mw...)
}

func (rt *Router) PUT(path string, h HandlerFunc, mw ...Middleware) {
	rt.Register(http.MethodPut, path, h, mw...)
}

func (rt *Router) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	rt.Register(http.MethodPatch, path, h, mw...)
}

func (rt *Router) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	rt.Register(http.MethodDelete, path, h, mw...)
}

// Handle lets each handler declare its routes.
func (rt *Router) Handle(handlers ...Handler) {
	for _, h := range handlers {
		h.Routes(rt)
	}
}

// Use appends global middleware. Global middleware runs before every
// route's own middleware, in registration order.
func (rt *Router) Use(mw ...Middleware) {
	rt.mustBeOpen()
	rt.global = append(rt.global, mw...)
}

// Routes returns the registered routes sorted by path, then method.
func (rt *Router) Routes() []Route {
	out := make([]Route, 0, len(rt.routes))
	for k := range rt.routes {
		out = append(out, Route{Method: k.method, Path: k.path})
	}
	slices.SortFunc(out, func(a, b Route) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})
	return out
}

func (rt *Router) mustBeOpen() {
	if rt.started.Load() {
		panic("router: routes and middleware must be registered before the first dispatch")
	}
}

// Dispatch runs the pipeline for req and returns the rendered response
// without touching any transport. It never panics and never returns an
// error: every failure becomes an error envelope.
func (rt *Router) Dispatch(req *Request) Response {
	rt.started.Store(true)

	env := rt.run(req)
	status, body, err := env.Render()
	if err != nil {
		env = rt.fail(req, fmt.Errorf("encode response: %w", err))
		status, body, _ = env.Render()
	}

	header := req.ResponseHeader().Clone()
	header.Set("Content-Type", ContentTypeJSON)

	return Response{
		Status:   status,
		Header:   header,
		Body:     body,
		Envelope: env.ToStructure(),
	}
}

// ServeHTTP adapts the router to net/http. It writes the same bytes
// Dispatch returns.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, cleanup := FromHTTP(w, r, rt.cookies, rt.bodyLimit)
	defer cleanup()

	res := rt.Dispatch(req)
	for k, vs := range res.Header {
		w.Header()[k] = vs
	}
	if err := writeResponse(w, res.Status, res.Body); err != nil {
		rt.logger.DebugContext(req.Context(), "failed to write response", slog.String("error", err.Error()))
	}
}

func (rt *Router) run(req *Request) (env Envelope) {
	if err := req.BodyError(); err != nil {
		rt.logger.DebugContext(req.Context(), "request body decoded with errors",
			slog.String("method", req.Method()),
			slog.String("path", req.Path()),
			slog.String("error", err.Error()),
		)
	}

	rte, ok := rt.routes[routeKey{method: req.Method(), path: req.Path()}]
	if !ok {
		return rt.fail(req, ErrRouteNotFound(req.Method(), req.Path()))
	}

	defer func() {
		if v := recover(); v != nil {
			env = rt.fail(req, &PanicError{Value: v, Stack: debug.Stack()})
		}
	}()

	h := chain(rt.global, chain(rte.middlewares, rte.handler))
	result, err := h(req)
	if err != nil {
		return rt.fail(req, err)
	}
	return wrapResult(result)
}

// wrapResult passes envelopes through and wraps anything else as the
// payload of a generic success envelope.
func wrapResult(result any) Envelope {
	switch v := result.(type) {
	case Envelope:
		return v
	case *Envelope:
		if v != nil {
			return *v
		}
		return Success(DefaultSuccessMessage)
	case nil:
		return Success(DefaultSuccessMessage)
	default:
		return Success(DefaultSuccessMessage).WithPayload(v)
	}
}

// fail is the single place where errors become envelopes.
func (rt *Router) fail(req *Request, err error) Envelope {
	e := classify(err)
	status := e.StatusCode()

	attrs := []slog.Attr{
		slog.String("method", req.Method()),
		slog.String("path", req.Path()),
		slog.String("kind", e.Kind.String()),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	}
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	rt.logger.LogAttrs(req.Context(), level, "request failed", attrs...)

	return Fail(e.Message, WithStatus(status))
}
