package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/internal"
	"github.com/dmitrymomot/todo/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("handler sees a deadline", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRouter(internal.WithMiddleware(middlewares.Timeout(time.Second)))
		var hasDeadline bool
		rt.GET("/", func(r *internal.Request) (any, error) {
			_, hasDeadline = r.Context().Deadline()
			return "ok", nil
		})

		res := dispatch(t, rt, internal.RequestInput{URI: "/"})
		require.Equal(t, http.StatusOK, res.Status)
		assert.True(t, hasDeadline)
		assert.Equal(t, "ok", res.Envelope.Payload)
	})

	t.Run("handler failing after deadline maps to 503", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRouter(internal.WithMiddleware(middlewares.Timeout(10 * time.Millisecond)))
		rt.GET("/", func(r *internal.Request) (any, error) {
			<-r.Context().Done()
			return nil, r.Context().Err()
		})

		res := dispatch(t, rt, internal.RequestInput{URI: "/"})
		assert.Equal(t, http.StatusServiceUnavailable, res.Status)
		assert.False(t, res.Envelope.Success)
		assert.Equal(t, "Request timed out", res.Envelope.Message)
	})

	t.Run("errors before deadline pass through", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRouter(internal.WithMiddleware(middlewares.Timeout(time.Second)))
		rt.GET("/", func(r *internal.Request) (any, error) {
			return nil, internal.ErrValidation("Missing title")
		})

		res := dispatch(t, rt, internal.RequestInput{URI: "/"})
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "Missing title", res.Envelope.Message)
	})

	t.Run("non-positive timeout uses default", func(t *testing.T) {
		t.Parallel()

		rt := internal.NewRouter(internal.WithMiddleware(middlewares.Timeout(0)))
		var deadline time.Time
		rt.GET("/", func(r *internal.Request) (any, error) {
			deadline, _ = r.Context().Deadline()
			return nil, nil
		})

		dispatch(t, rt, internal.RequestInput{URI: "/"})
		assert.WithinDuration(t, time.Now().Add(middlewares.DefaultTimeout), deadline, 5*time.Second)
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := &middlewares.TimeoutError{Duration: 5 * time.Second}
	assert.Equal(t, "request timeout after 5s", err.Error())
	assert.True(t, middlewares.IsTimeoutError(err))
	assert.True(t, middlewares.IsTimeoutError(internal.ErrOperational("x", internal.WithCause(err))))
	assert.False(t, middlewares.IsTimeoutError(errors.New("other")))
	assert.False(t, middlewares.IsTimeoutError(context.DeadlineExceeded))
}
