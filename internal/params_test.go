package internal_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/internal"
)

func jsonRequest(body string) *internal.Request {
	return internal.NewRequest(internal.RequestInput{Body: []byte(body)})
}

func requireValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, internal.IsKind(err, internal.KindValidation), "want validation error, got %v", err)
	require.Equal(t, msg, err.Error())
}

func TestRequireString(t *testing.T) {
	t.Parallel()

	v, err := internal.RequireString(jsonRequest(`{"title":"  buy milk "}`), "title", "Title is required")
	require.NoError(t, err)
	require.Equal(t, "buy milk", v)

	v, err = internal.RequireString(jsonRequest(`{"id":42}`), "id", "ID is required")
	require.NoError(t, err)
	require.Equal(t, "42", v)

	for _, body := range []string{`{}`, `{"title":""}`, `{"title":"   "}`, `{"title":["a"]}`, `{"title":null}`} {
		_, err = internal.RequireString(jsonRequest(body), "title", "Title is required")
		requireValidation(t, err, "Title is required")
	}
}

func TestRequireInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want int
		ok   bool
	}{
		{`{"n":5}`, 5, true},
		{`{"n":"7"}`, 7, true},
		{`{"n":" 8 "}`, 8, true},
		{`{"n":-3}`, -3, true},
		{`{"n":1.5}`, 0, false},
		{`{"n":"abc"}`, 0, false},
		{`{"n":true}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		v, err := internal.RequireInt(jsonRequest(tt.body), "n", "N must be an integer")
		if !tt.ok {
			requireValidation(t, err, "N must be an integer")
			continue
		}
		require.NoError(t, err, tt.body)
		require.Equal(t, tt.want, v)
	}
}

func TestOptionalInt(t *testing.T) {
	t.Parallel()

	req := internal.NewRequest(internal.RequestInput{Query: url.Values{"page": {"3"}, "blank": {""}, "bad": {"x"}}})

	v, err := internal.OptionalInt(req, "page", 1, "bad page")
	require.NoError(t, err)
	require.Equal(t, 3, v)

	v, err = internal.OptionalInt(req, "missing", 1, "bad page")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = internal.OptionalInt(req, "blank", 10, "bad page")
	require.NoError(t, err)
	require.Equal(t, 10, v)

	_, err = internal.OptionalInt(req, "bad", 1, "bad page")
	requireValidation(t, err, "bad page")
}

func TestRequireBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want bool
		ok   bool
	}{
		{`{"done":true}`, true, true},
		{`{"done":false}`, false, true},
		{`{"done":1}`, true, true},
		{`{"done":0}`, false, true},
		{`{"done":"1"}`, true, true},
		{`{"done":"false"}`, false, true},
		{`{"done":"TRUE"}`, true, true},
		{`{"done":2}`, false, false},
		{`{"done":"yes"}`, false, false},
		{`{}`, false, false},
	}
	for _, tt := range tests {
		v, err := internal.RequireBool(jsonRequest(tt.body), "done", "Done must be a boolean")
		if !tt.ok {
			requireValidation(t, err, "Done must be a boolean")
			continue
		}
		require.NoError(t, err, tt.body)
		require.Equal(t, tt.want, v, tt.body)
	}
}

func TestRequireEmail(t *testing.T) {
	t.Parallel()

	v, err := internal.RequireEmail(jsonRequest(`{"email":" bob@example.com "}`), "email", "Invalid email")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", v)

	for _, email := range []string{"", "bob", "bob@", "@example.com", "bob@localhost", "Bob <bob@example.com>", "a b@example.com"} {
		req := internal.NewRequest(internal.RequestInput{Form: map[string]any{"email": email}})
		_, err := internal.RequireEmail(req, "email", "Invalid email")
		requireValidation(t, err, "Invalid email")
	}
}

func TestEnsureOperationSucceeded(t *testing.T) {
	t.Parallel()

	require.NoError(t, internal.EnsureOperationSucceeded(internal.ResultOf(1, nil), "create task"))

	err := internal.EnsureOperationSucceeded(internal.ResultOf(0, nil), "delete task")
	require.True(t, internal.IsKind(err, internal.KindOperational))
	require.Equal(t, "Failed to delete task: no changes were made", err.Error())

	cause := errors.New("db unavailable")
	err = internal.EnsureOperationSucceeded(internal.ResultOf(0, cause), "update task")
	require.True(t, internal.IsKind(err, internal.KindOperational))
	require.Equal(t, "Failed to update task: db unavailable", err.Error())
	require.ErrorIs(t, err, cause)

	err = internal.EnsureOperationSucceeded(internal.OperationResult{Success: false, Changed: 1}, "sign in")
	require.Equal(t, "Failed to sign in: unknown error", err.Error())
}
