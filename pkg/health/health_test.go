package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), nil)
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.NoError(t, resp.Err())
	})

	t.Run("one failing check", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"ok":  func(context.Context) error { return nil },
			"bad": func(context.Context) error { return errors.New("down") },
		})
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		err := resp.Err()
		assert.ErrorIs(t, err, health.ErrNotReady)
		var depErr *health.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, []string{"bad"}, depErr.Failed)
		assert.Equal(t, "health: service not ready: bad", err.Error())
		assert.Equal(t, health.StatusHealthy, resp.Checks["ok"].Status)
		assert.Equal(t, "down", resp.Checks["bad"].Error)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(10*time.Millisecond))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Contains(t, resp.Checks["slow"].Error, health.ErrProbeTimeout.Error())
	})
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	failing := health.Checks{"db": func(context.Context) error { return errors.New("down") }}
	r := health.Routes(failing)

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("ready json", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready?format=json", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp health.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, health.StatusUnhealthy, resp.Checks["db"].Status)
	})

	t.Run("ready text", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Service Unavailable", w.Body.String())
	})
}
