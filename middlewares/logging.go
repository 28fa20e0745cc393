package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/todo/internal"
)

// Logging returns middleware that writes one access log line per request.
// Failures are logged by the router itself, so only the outcome kind is
// recorded here.
func Logging(log *slog.Logger) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(r *internal.Request) (any, error) {
			start := time.Now()
			res, err := next(r)

			attrs := []slog.Attr{
				slog.String("method", r.Method()),
				slog.String("path", r.Path()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("authenticated", r.IsAuthenticated()),
			}
			if err != nil {
				e := internal.AsError(err)
				kind := internal.KindInternal
				status := kind.Status()
				if e != nil {
					kind = e.Kind
					status = e.StatusCode()
				}
				attrs = append(attrs,
					slog.String("kind", kind.String()),
					slog.Int("status", status),
				)
			}
			log.LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)

			return res, err
		}
	}
}
