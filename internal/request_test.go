package internal_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/todo/internal"
)

func TestBodyResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		form    map[string]any
		want    map[string]any
		wantErr bool
	}{
		{
			name: "json wins over form",
			raw:  `{"a":1}`,
			form: map[string]any{"a": "2"},
			want: map[string]any{"a": json.Number("1")},
		},
		{
			name: "url-encoded wins over form",
			raw:  "a=1&b=2",
			form: map[string]any{"c": 3},
			want: map[string]any{"a": "1", "b": "2"},
		},
		{
			name: "form fallback for empty body",
			raw:  "",
			form: map[string]any{"c": 3},
			want: map[string]any{"c": 3},
		},
		{
			name:    "invalid json without equals falls back and records error",
			raw:     `{"a":`,
			form:    map[string]any{"c": 3},
			want:    map[string]any{"c": 3},
			wantErr: true,
		},
		{
			name: "json array is not an object",
			raw:  `[1,2]`,
			want: map[string]any{},
		},
		{
			name:    "trailing data after json",
			raw:     `{"a":1} {"b":2}`,
			want:    map[string]any{},
			wantErr: true,
		},
		{
			name:    "bad escape keeps well-formed pairs",
			raw:     "title=50%+off&id=abc",
			form:    map[string]any{"c": 3},
			want:    map[string]any{"id": "abc"},
			wantErr: true,
		},
		{
			name: "repeated keys become lists",
			raw:  "tag=a&tag=b&ids[]=1",
			want: map[string]any{"tag": []any{"a", "b"}, "ids": []any{"1"}},
		},
		{
			name: "nested json keeps structure",
			raw:  `{"task":{"title":"x","done":true}}`,
			want: map[string]any{"task": map[string]any{"title": "x", "done": true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := internal.NewRequest(internal.RequestInput{Body: []byte(tt.raw), Form: tt.form})
			require.Equal(t, tt.want, req.Body())
			if tt.wantErr {
				require.Error(t, req.BodyError())
			} else {
				require.NoError(t, req.BodyError())
			}
		})
	}
}

func TestNormalization(t *testing.T) {
	t.Parallel()

	t.Run("method", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, http.MethodGet, internal.NormalizeMethod(""))
		require.Equal(t, http.MethodPost, internal.NormalizeMethod("post"))
		require.Equal(t, http.MethodDelete, internal.NormalizeMethod(" Delete "))
	})

	t.Run("path", func(t *testing.T) {
		t.Parallel()
		tests := map[string]string{
			"":                          "/",
			"/":                         "/",
			"/tasks/":                   "/tasks",
			"/tasks//":                  "/tasks",
			"/tasks?page=2":             "/tasks",
			"/tasks#frag":               "/tasks",
			"tasks":                     "/tasks",
			"http://example.com/me/?x=1": "/me",
		}
		for in, want := range tests {
			require.Equal(t, want, internal.NormalizePath(in), "input %q", in)
		}
	})

	t.Run("request defaults", func(t *testing.T) {
		t.Parallel()
		req := internal.NewRequest(internal.RequestInput{})
		require.Equal(t, http.MethodGet, req.Method())
		require.Equal(t, "/", req.Path())
		require.NotNil(t, req.Context())
		require.NotNil(t, req.Transport())
		require.Empty(t, req.Query())
		require.Empty(t, req.Body())
		require.Empty(t, req.Params())
		require.Empty(t, req.Files())
		require.Nil(t, req.Auth())
	})
}

func TestQueryDecoding(t *testing.T) {
	t.Parallel()

	req := internal.NewRequest(internal.RequestInput{
		URI:   "/tasks?ignored=1",
		Query: url.Values{"page": {"2"}, "tag[]": {"a", "b"}},
	})
	require.Equal(t, "/tasks", req.Path())
	require.Equal(t, map[string]any{"page": "2", "tag": []any{"a", "b"}}, req.Query())
}

func TestFileNormalization(t *testing.T) {
	t.Parallel()

	valid := map[string]any{
		"name": "a.txt", "type": "text/plain", "tmp_name": "/tmp/x", "error": 0, "size": int64(12),
	}
	req := internal.NewRequest(internal.RequestInput{Files: map[string]any{
		"ok":          valid,
		"json_number": map[string]any{"name": "b", "type": "t", "tmp_name": "/tmp/y", "error": json.Number("0"), "size": json.Number("3")},
		"missing":     map[string]any{"name": "a.txt", "type": "text/plain", "tmp_name": "/tmp/x", "error": 0},
		"bad_size":    map[string]any{"name": "a.txt", "type": "text/plain", "tmp_name": "/tmp/x", "error": 0, "size": "12"},
		"bad_name":    map[string]any{"name": 5, "type": "text/plain", "tmp_name": "/tmp/x", "error": 0, "size": 1},
		"fractional":  map[string]any{"name": "a", "type": "t", "tmp_name": "/tmp/x", "error": 0, "size": 1.5},
		"not_a_map":   "a.txt",
	}})

	files := req.Files()
	require.Len(t, files, 2)

	f, ok := req.File("ok")
	require.True(t, ok)
	require.Equal(t, internal.UploadedFile{Name: "a.txt", MimeType: "text/plain", TempPath: "/tmp/x", Size: 12}, f)
	require.True(t, f.OK())

	f, ok = req.File("json_number")
	require.True(t, ok)
	require.Equal(t, int64(3), f.Size)
}

func TestRequestAuthAndLookup(t *testing.T) {
	t.Parallel()

	req := internal.NewRequest(internal.RequestInput{
		Query: url.Values{"id": {"from-query"}, "q": {"only-query"}},
		Body:  []byte(`{"id":"from-body","b":"only-body"}`),
	})

	v, ok := req.Lookup("id")
	require.True(t, ok)
	require.Equal(t, "from-query", v)

	req.SetParam("id", "from-param")
	v, _ = req.Lookup("id")
	require.Equal(t, "from-param", v)

	v, _ = req.Lookup("b")
	require.Equal(t, "only-body", v)

	_, ok = req.Lookup("nope")
	require.False(t, ok)

	require.False(t, req.IsAuthenticated())
	req.SetAuth(map[string]any{"sub": "u1"})
	require.True(t, req.IsAuthenticated())
	req.SetAuth(map[string]any{})
	require.False(t, req.IsAuthenticated())
	require.Nil(t, req.Auth())

	type key struct{}
	req.Set(key{}, "v")
	require.Equal(t, "v", req.Get(key{}))
}
