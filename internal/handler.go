package internal

// Handler declares routes on a router.
//
// Example:
//
//	type TaskHandler struct {
//	    tasks store.Tasks
//	}
//
//	func (h *TaskHandler) Routes(r *todo.Router) {
//	    r.GET("/tasks", h.list, middlewares.RequireAuthenticated())
//	    r.POST("/tasks", h.create, middlewares.RequireAuthenticated())
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// It returns either an Envelope, which is sent as is, or any other value,
// which becomes the payload of a generic success envelope.
// Returning a non-nil error aborts the request with an error envelope.
type HandlerFunc func(r *Request) (any, error)

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect or modify the request, or abort the pipeline by
// returning an error without calling next.
//
// Example:
//
//	func Audit(next todo.HandlerFunc) todo.HandlerFunc {
//	    return func(r *todo.Request) (any, error) {
//	        log.Println(r.Method(), r.Path())
//	        return next(r)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Before adapts a plain pre-handler check into a Middleware.
// A non-nil error from fn stops the pipeline.
func Before(fn func(r *Request) error) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(r *Request) (any, error) {
			if err := fn(r); err != nil {
				return nil, err
			}
			return next(r)
		}
	}
}

// chain wraps h so that middlewares run in slice order before it.
func chain(mws []Middleware, h HandlerFunc) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
