package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/todo/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutError represents a request that outlived its deadline.
type TimeoutError struct {
	Duration time.Duration // The timeout that was exceeded
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsTimeoutError returns true if the error is a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// Timeout returns middleware that puts a deadline on the request context.
// Handlers run synchronously; storage calls that honor the context give up
// at the deadline. A handler failing after the deadline passed is reported
// as 503 with a TimeoutError cause.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(r *internal.Request) (any, error) {
			parent := r.Context()
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			r.SetContext(ctx)
			defer r.SetContext(parent)

			res, err := next(r)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, internal.ErrOperational("Request timed out",
					internal.WithCause(&TimeoutError{Duration: timeout}),
					internal.WithStatusCode(http.StatusServiceUnavailable),
				)
			}
			return res, err
		}
	}
}
