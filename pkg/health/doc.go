// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] reports that the process is running. [ReadinessHandler]
// runs a set of named [Checks] concurrently under one timeout and answers
// 503 when any of them fails. Both negotiate plain text or JSON through
// the Accept header or ?format=json.
//
//	mux := chi.NewRouter()
//	mux.Mount("/health", health.Routes(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	}, health.WithLogger(log)))
//
// The JSON body lists every check:
//
//	{"checks":{"postgres":{"status":"healthy"}},"status":"healthy"}
package health
