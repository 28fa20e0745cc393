package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo"
	"github.com/dmitrymomot/todo/handlers"
	"github.com/dmitrymomot/todo/middlewares"
	"github.com/dmitrymomot/todo/pkg/session"
	"github.com/dmitrymomot/todo/pkg/sessiontransport"
	"github.com/dmitrymomot/todo/pkg/token"
	"github.com/dmitrymomot/todo/store"
)

type app struct {
	router *todo.Router
	store  *store.Memory
}

func newApp(t *testing.T) *app {
	t.Helper()

	tokens, err := token.New(token.Config{
		Secret:   "handlers-test-secret-0123456789abcdef",
		Lifetime: time.Hour,
	})
	require.NoError(t, err)
	sessions := session.New(tokens)
	st := store.NewMemory()

	router := todo.NewRouter(
		todo.WithMiddleware(middlewares.RefreshIdentity(sessions)),
		todo.WithHandlers(
			handlers.NewAuth(st, sessions, handlers.WithPasswordCost(4)),
			handlers.NewTasks(st),
		),
	)
	return &app{router: router, store: st}
}

type call struct {
	method string
	uri    string
	body   string
	query  url.Values
}

// decoded mirrors the wire envelope.
type decoded struct {
	Success    bool            `json:"success"`
	Type       string          `json:"type"`
	Message    string          `json:"message"`
	Payload    json.RawMessage `json:"payload"`
	TotalPages *int            `json:"totalPages"`
	status     int
}

func (a *app) do(t *testing.T, jar sessiontransport.Transport, c call) decoded {
	t.Helper()
	res := a.router.Dispatch(todo.NewRequest(todo.RequestInput{
		Method:    c.method,
		URI:       c.uri,
		Body:      []byte(c.body),
		Query:     c.query,
		Transport: jar,
	}))
	var d decoded
	require.NoError(t, json.Unmarshal(res.Body, &d))
	d.status = res.Status
	return d
}

func (d decoded) into(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(d.Payload, v))
}

func (a *app) signup(t *testing.T, jar sessiontransport.Transport, email string) {
	t.Helper()
	res := a.do(t, jar, call{
		method: http.MethodPost,
		uri:    "/signup",
		body:   `{"email":"` + email + `","password":"correct-horse"}`,
	})
	require.True(t, res.Success, res.Message)
}
