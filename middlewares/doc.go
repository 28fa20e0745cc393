// Package middlewares provides request middleware for the todo router.
//
// Every middleware has the router's signature: it wraps the next handler
// and may run code before and after it, or short-circuit by returning an
// error that the router turns into an error envelope.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. Inbound
// X-Request-ID or X-Correlation-ID headers are reused; otherwise a UUIDv4
// is generated. The ID is echoed in the X-Request-ID response header.
//
//	router := todo.NewRouter(
//	    todo.WithMiddleware(middlewares.RequestID()),
//	)
//
// Use RequestIDExtractor with logger.New to add request_id to every log entry:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
// # Session identity
//
// RefreshIdentity resumes the session token carried by the request
// transport, attaches its claims to the request and rotates tokens that
// are close to expiry. It never rejects a request. RequireAuthenticated
// guards individual routes:
//
//	router.Use(middlewares.RefreshIdentity(sessions))
//	router.GET("/me", h.me, middlewares.RequireAuthenticated())
//
// # Timeout
//
// Timeout puts a deadline on the request context. Storage calls honor the
// context, and a handler failing after the deadline is reported as 503.
//
//	router.Use(middlewares.Timeout(10 * time.Second))
//
// # Logging
//
// Logging writes one structured access log line per request with method,
// path, duration and, for failures, the error kind and status.
package middlewares
