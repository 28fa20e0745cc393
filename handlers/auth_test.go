package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/pkg/sessiontransport"
)

func TestAuth_SignupSigninMe(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	jar := sessiontransport.NewMemory()

	res := a.do(t, jar, call{
		method: http.MethodPost,
		uri:    "/signup",
		body:   `{"email":"Alice@Example.com","password":"correct-horse"}`,
	})
	require.Equal(t, http.StatusOK, res.status)
	require.True(t, res.Success)
	assert.Equal(t, "Account created", res.Message)

	var user map[string]any
	res.into(t, &user)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "PasswordHash")

	res = a.do(t, jar, call{method: http.MethodGet, uri: "/me"})
	require.Equal(t, http.StatusOK, res.status)
	var me map[string]any
	res.into(t, &me)
	assert.Equal(t, user["id"], me["id"])

	res = a.do(t, jar, call{method: http.MethodPost, uri: "/signout"})
	require.True(t, res.Success)
	assert.Equal(t, "Signed out", res.Message)

	res = a.do(t, jar, call{method: http.MethodGet, uri: "/me"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Contains(t, res.Message, "Unauthorized")

	res = a.do(t, jar, call{
		method: http.MethodPost,
		uri:    "/signin",
		body:   "email=alice%40example.com&password=correct-horse",
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Signed in", res.Message)

	res = a.do(t, jar, call{method: http.MethodGet, uri: "/me/"})
	assert.Equal(t, http.StatusOK, res.status)
}

func TestAuth_SignupValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing email", body: `{"password":"correct-horse"}`, message: "A valid email address is required"},
		{name: "display name", body: `{"email":"Bob <bob@example.com>","password":"correct-horse"}`, message: "A valid email address is required"},
		{name: "missing password", body: `{"email":"bob@example.com"}`, message: "Password is required"},
		{name: "short password", body: `{"email":"bob@example.com","password":"short"}`, message: "Password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := newApp(t)
			res := a.do(t, sessiontransport.NewMemory(), call{method: http.MethodPost, uri: "/signup", body: tt.body})
			assert.Equal(t, http.StatusBadRequest, res.status)
			assert.False(t, res.Success)
			assert.Equal(t, "error", res.Type)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestAuth_DuplicateEmail(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	a.signup(t, sessiontransport.NewMemory(), "dup@example.com")

	res := a.do(t, sessiontransport.NewMemory(), call{
		method: http.MethodPost,
		uri:    "/signup",
		body:   `{"email":"DUP@example.com","password":"correct-horse"}`,
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Email is already registered", res.Message)
}

func TestAuth_SigninRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	a.signup(t, sessiontransport.NewMemory(), "carol@example.com")

	for _, body := range []string{
		`{"email":"carol@example.com","password":"wrong-password"}`,
		`{"email":"nobody@example.com","password":"correct-horse"}`,
	} {
		jar := sessiontransport.NewMemory()
		res := a.do(t, jar, call{method: http.MethodPost, uri: "/signin", body: body})
		assert.Equal(t, http.StatusUnauthorized, res.status)
		assert.Equal(t, "Unauthorized: invalid email or password", res.Message)

		_, ok := jar.Get("todo_session")
		assert.False(t, ok)
	}
}

func TestAuth_DeleteAccount(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	jar := sessiontransport.NewMemory()
	a.signup(t, jar, "dave@example.com")

	res := a.do(t, jar, call{method: http.MethodPost, uri: "/tasks", body: `{"title":"Buy milk"}`})
	require.True(t, res.Success, res.Message)

	res = a.do(t, jar, call{method: http.MethodDelete, uri: "/me"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Account deleted", res.Message)

	_, ok := jar.Get("todo_session")
	assert.False(t, ok)

	res = a.do(t, jar, call{method: http.MethodGet, uri: "/tasks"})
	assert.Equal(t, http.StatusUnauthorized, res.status)

	// The address is free again.
	a.signup(t, sessiontransport.NewMemory(), "dave@example.com")
}

func TestAuth_StaleSessionAfterDeletion(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	first := sessiontransport.NewMemory()
	a.signup(t, first, "erin@example.com")

	second := sessiontransport.NewMemory()
	res := a.do(t, second, call{
		method: http.MethodPost,
		uri:    "/signin",
		body:   `{"email":"erin@example.com","password":"correct-horse"}`,
	})
	require.True(t, res.Success)

	res = a.do(t, first, call{method: http.MethodDelete, uri: "/me"})
	require.True(t, res.Success)

	res = a.do(t, second, call{method: http.MethodGet, uri: "/me"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Unauthorized: account no longer exists", res.Message)

	res = a.do(t, second, call{method: http.MethodDelete, uri: "/me"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
}
