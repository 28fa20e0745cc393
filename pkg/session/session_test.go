package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/pkg/session"
	"github.com/dmitrymomot/todo/pkg/sessiontransport"
	"github.com/dmitrymomot/todo/pkg/token"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T) (*session.Manager, *sessiontransport.Memory, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	tokens, err := token.New(token.Config{
		Secret:           "session-test-secret-0123456789abcdef",
		Lifetime:         24 * time.Hour,
		RefreshThreshold: 4 * time.Hour,
	}, token.WithClock(c.Now))
	require.NoError(t, err)
	return session.New(tokens), sessiontransport.NewMemory(sessiontransport.WithClock(c.Now)), c
}

func TestManager_Resume(t *testing.T) {
	t.Parallel()

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		mgr, jar, _ := setup(t)
		claims, state := mgr.Resume(jar)
		assert.Nil(t, claims)
		assert.Equal(t, session.Anonymous, state)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		mgr, jar, c := setup(t)
		jar.Set(mgr.CookieName(), "garbage", c.now.Add(time.Hour))
		_, state := mgr.Resume(jar)
		assert.Equal(t, session.Anonymous, state)
	})

	t.Run("fresh token", func(t *testing.T) {
		t.Parallel()
		mgr, jar, c := setup(t)
		tok, err := mgr.Start(jar, token.Claims{"sub": "u1"})
		require.NoError(t, err)

		c.now = c.now.Add(time.Hour)
		claims, state := mgr.Resume(jar)
		assert.Equal(t, session.Authenticated, state)
		assert.Equal(t, "u1", claims["sub"])

		stored, ok := jar.Get(mgr.CookieName())
		require.True(t, ok)
		assert.Equal(t, tok, stored)
	})

	t.Run("stale token rotates", func(t *testing.T) {
		t.Parallel()
		mgr, jar, c := setup(t)
		tok, err := mgr.Start(jar, token.Claims{"sub": "u1"})
		require.NoError(t, err)

		c.now = c.now.Add(21 * time.Hour)
		claims, state := mgr.Resume(jar)
		assert.Equal(t, session.Rotated, state)
		assert.Equal(t, "u1", claims["sub"])

		stored, ok := jar.Get(mgr.CookieName())
		require.True(t, ok)
		assert.NotEqual(t, tok, stored)

		exp, ok := jar.Expiry(mgr.CookieName())
		require.True(t, ok)
		assert.Equal(t, c.now.Add(24*time.Hour), exp)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		mgr, jar, c := setup(t)
		tok, err := mgr.Start(jar, token.Claims{"sub": "u1"})
		require.NoError(t, err)

		c.now = c.now.Add(25 * time.Hour)
		// Simulate a client that kept the cookie past its expiry.
		jar.Set(mgr.CookieName(), tok, time.Time{})
		_, state := mgr.Resume(jar)
		assert.Equal(t, session.Anonymous, state)
	})
}

func TestManager_StartEnd(t *testing.T) {
	t.Parallel()

	mgr, jar, _ := setup(t)

	_, err := mgr.Start(jar, nil)
	require.ErrorIs(t, err, session.ErrNoIdentity)

	_, err = mgr.Start(jar, token.Claims{"sub": "u1"})
	require.NoError(t, err)
	_, ok := jar.Get(mgr.CookieName())
	require.True(t, ok)

	mgr.End(jar)
	_, ok = jar.Get(mgr.CookieName())
	assert.False(t, ok)
}

func TestWithCookieName(t *testing.T) {
	t.Parallel()

	tokens, err := token.New(token.Config{Secret: "x-secret"})
	require.NoError(t, err)

	assert.Equal(t, "todo_session", session.New(tokens).CookieName())
	assert.Equal(t, "sid", session.New(tokens, session.WithCookieName("sid")).CookieName())
	assert.Equal(t, "todo_session", session.NewFromConfig(tokens, session.Config{}).CookieName())
}

func TestState(t *testing.T) {
	t.Parallel()

	assert.False(t, session.Anonymous.IsAuthenticated())
	assert.True(t, session.Authenticated.IsAuthenticated())
	assert.True(t, session.Rotated.IsAuthenticated())
	assert.Equal(t, "rotated", session.Rotated.String())
}

func TestValue(t *testing.T) {
	t.Parallel()

	claims := map[string]any{"sub": "u1", "n": 1.0}

	v, err := session.Value[string](claims, "sub")
	require.NoError(t, err)
	assert.Equal(t, "u1", v)

	_, err = session.Value[string](claims, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)

	_, err = session.Value[string](claims, "n")
	require.ErrorIs(t, err, session.ErrTypeMismatch)

	assert.Equal(t, "fallback", session.ValueOr(claims, "missing", "fallback"))
}
