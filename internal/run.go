package internal

import (
	"errors"
	"net/http"
)

// Run serves handler over HTTP and blocks until shutdown.
// SIGINT and SIGTERM trigger a graceful shutdown: in-flight requests
// finish, then shutdown hooks run in registration order.
//
// Example:
//
//	mux := chi.NewRouter()
//	mux.Mount("/health", health.Routes(pool))
//	mux.Mount("/", router)
//
//	err := todo.Run(mux,
//	    todo.Address(":8080"),
//	    todo.Logger(log),
//	    todo.ShutdownHook(db.Shutdown(pool)),
//	)
func Run(handler http.Handler, opts ...RunOption) error {
	if handler == nil {
		return errors.New("todo.Run: handler is required")
	}
	return runServer(handler, buildRunConfig(opts...))
}
