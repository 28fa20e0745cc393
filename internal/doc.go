// Package internal provides the request pipeline behind the todo API.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/todo" instead, which re-exports the public API.
//
// # Core Types
//
//   - Request: normalized view of one inbound request (method, path, query,
//     body, files, route parameters and the authenticated identity)
//   - Router: exact (method, path) route table plus the middleware pipeline
//   - Handler: interface implemented by types that declare routes
//   - HandlerFunc: route handler returning a payload or an Envelope
//   - Middleware: wraps handlers; returning an error aborts the pipeline
//   - Envelope: uniform {success, type, message, payload, totalPages} response
//   - Error: classified failure with a Kind that selects the HTTP status
//
// # Body Resolution
//
// The request body comes from exactly one source, first match wins:
//
//  1. the raw bytes, when they decode to a JSON object
//  2. the raw bytes, when they contain "=" and yield url-encoded pairs;
//     malformed pairs are skipped
//  3. the form fields supplied by the transport
//
// JSON numbers are kept as json.Number. A decode error never fails
// the request; it is available from Request.BodyError and logged at debug
// level during dispatch.
//
// # Dispatch
//
// Router.Dispatch looks up the exact route, runs global middleware, then
// route middleware, then the handler. Any error or panic on the way is
// converted to an error envelope in one place:
//
//	Kind            Status
//	Validation      400
//	NotFound        400  "Route not found: <METHOD> <path>"
//	Unauthorized    401
//	Operational     400
//	Internal        500  "Internal Server Error: <cause>"
//
// Dispatch returns the rendered Response without any I/O. ServeHTTP writes
// the same bytes to the client.
//
// # Handler Pattern
//
//	type TaskHandler struct {
//	    tasks store.Tasks
//	}
//
//	func (h *TaskHandler) Routes(r *internal.Router) {
//	    r.GET("/tasks", h.list, middlewares.RequireAuthenticated())
//	}
//
//	func (h *TaskHandler) list(r *internal.Request) (any, error) {
//	    tasks, err := h.tasks.List(r.Context(), userID(r))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return tasks, nil
//	}
//
// Handlers receive dependencies via constructor injection. A plain return
// value becomes the payload of a "Success" envelope.
package internal
