package internal_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/internal"
	"github.com/dmitrymomot/todo/pkg/sessiontransport"
)

func newRequestWithHeader(kv ...string) *internal.Request {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return internal.NewRequest(internal.RequestInput{Header: h})
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("empty sources returns false", func(t *testing.T) {
		t.Parallel()
		v, ok := internal.NewExtractor().Extract(newRequestWithHeader())
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()
		ext := internal.NewExtractor(
			internal.FromHeader("X-First"),
			internal.FromHeader("X-Second"),
		)
		v, ok := ext.Extract(newRequestWithHeader("X-First", "first-val", "X-Second", "second-val"))
		require.True(t, ok)
		require.Equal(t, "first-val", v)
	})

	t.Run("falls through to second source when first misses", func(t *testing.T) {
		t.Parallel()
		ext := internal.NewExtractor(
			internal.FromHeader("X-Missing"),
			internal.FromHeader("X-Present"),
		)
		v, ok := ext.Extract(newRequestWithHeader("X-Present", "found"))
		require.True(t, ok)
		require.Equal(t, "found", v)
	})

	t.Run("all sources miss returns false", func(t *testing.T) {
		t.Parallel()
		ext := internal.NewExtractor(
			internal.FromHeader("X-A"),
			internal.FromQuery("b"),
		)
		v, ok := ext.Extract(newRequestWithHeader())
		require.False(t, ok)
		require.Empty(t, v)
	})
}

func TestFromQueryAndBody(t *testing.T) {
	t.Parallel()

	req := internal.NewRequest(internal.RequestInput{
		Query: url.Values{"q": {"from-query"}},
		Body:  []byte(`{"b":"from-body","n":5}`),
	})

	v, ok := internal.FromQuery("q")(req)
	require.True(t, ok)
	require.Equal(t, "from-query", v)

	v, ok = internal.FromBody("b")(req)
	require.True(t, ok)
	require.Equal(t, "from-body", v)

	_, ok = internal.FromBody("n")(req)
	require.False(t, ok, "non-string values are not extracted")

	req.SetParam("id", "42")
	v, ok = internal.FromParam("id")(req)
	require.True(t, ok)
	require.Equal(t, "42", v)
}

func TestFromTransport(t *testing.T) {
	t.Parallel()

	jar := sessiontransport.NewMemory()
	jar.Set("sid", "tok", time.Now().Add(time.Hour))
	req := internal.NewRequest(internal.RequestInput{Transport: jar})

	v, ok := internal.FromTransport("sid")(req)
	require.True(t, ok)
	require.Equal(t, "tok", v)

	_, ok = internal.FromTransport("other")(req)
	require.False(t, ok)
}

func TestFromBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc", "abc", true},
		{"case insensitive", "bearer abc", "abc", true},
		{"empty token", "Bearer ", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"missing", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := internal.FromBearerToken()(newRequestWithHeader("Authorization", tt.header))
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, v)
		})
	}
}
