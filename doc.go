// Package todo is the HTTP core of a personal to-do backend: an exact-match
// route table, ordered middleware, request normalization, JSON response
// envelopes and a stateless token session.
//
// # Quick Start
//
// Create a router, register handlers and serve it:
//
//	router := todo.NewRouter(
//	    todo.WithLogger(log),
//	    todo.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.RefreshIdentity(sessions),
//	    ),
//	    todo.WithHandlers(
//	        handlers.NewAuth(st, sessions),
//	        handlers.NewTasks(st),
//	    ),
//	)
//
//	if err := todo.Run(router, todo.Address(":8080")); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type TaskHandler struct {
//	    store store.Tasks
//	}
//
//	func (h *TaskHandler) Routes(r *todo.Router) {
//	    r.GET("/tasks", h.list, middlewares.RequireAuthenticated())
//	    r.POST("/tasks", h.create, middlewares.RequireAuthenticated())
//	}
//
// Every handler has one signature, func(*Request) (any, error). Return an
// [Envelope] to control the message, or any other value to have it wrapped
// as the payload of a "Success" envelope. Returned errors and panics become
// error envelopes; nothing escapes dispatch.
//
// # Routing
//
// Routes match on the exact (method, path) pair. Paths are normalized the
// same way on registration and lookup: query and fragment are dropped,
// trailing slashes trimmed, and the empty path becomes "/". A miss answers
// "Route not found: <METHOD> <path>" with status 400 without running any
// middleware. Routes must be registered before the first request.
//
// # Middleware
//
// Global middleware runs first, then the route's own, both in registration
// order. A middleware that returns an error stops the chain:
//
//	func(next todo.HandlerFunc) todo.HandlerFunc {
//	    return func(r *todo.Request) (any, error) {
//	        // before
//	        res, err := next(r)
//	        // after
//	        return res, err
//	    }
//	}
//
// # Requests
//
// The body is resolved from one source: a JSON object, else a url-encoded
// string, else the submitted form. Parameters are read with
// [RequireString], [RequireInt], [RequireBool] and [RequireEmail], which look
// in route parameters, then the query, then the body, and fail with a
// validation error carrying the given message.
//
// # Errors
//
// Errors are classified by kind: validation, not found and operational
// answer 400, unauthorized 401, and anything unclassified 500 with the
// message "Internal Server Error: <cause>".
//
// # Testing
//
// Dispatch runs the full pipeline without a network and returns the exact
// bytes ServeHTTP would write:
//
//	res := router.Dispatch(todo.NewRequest(todo.RequestInput{
//	    Method:    "POST",
//	    URI:       "/signin",
//	    Body:      []byte(`{"email":"a@example.com","password":"secret123"}`),
//	    Transport: jar,
//	}))
package todo
