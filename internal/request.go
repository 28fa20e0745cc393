package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/todo/pkg/sessiontransport"
)

// ErrTrailingJSON is recorded when a JSON body has data after the object.
var ErrTrailingJSON = errors.New("request: unexpected data after JSON value")

// RequestInput holds the raw pieces of one inbound transport event.
// Every field is optional.
type RequestInput struct {
	// Context is the transport context; defaults to context.Background().
	Context context.Context

	// Header holds inbound headers.
	Header http.Header

	// Transport reads and writes the session cookie for this request.
	// Defaults to a fresh in-memory jar.
	Transport sessiontransport.Transport

	// Query holds the decoded query string.
	Query url.Values

	// Form is the fallback body source, used when Body yields nothing.
	Form map[string]any

	// Files maps form field names to upload descriptors.
	Files map[string]any

	// Method is the raw HTTP verb; defaults to GET.
	Method string

	// URI is the raw request target; only its path component is kept.
	URI string

	// Body is the raw request body.
	Body []byte
}

// Request is the normalized view of one inbound request.
// It is owned by a single in-flight request and never shared.
type Request struct {
	ctx        context.Context
	header     http.Header
	respHeader http.Header
	transport  sessiontransport.Transport
	query      map[string]any
	body       map[string]any
	params     map[string]any
	auth       map[string]any
	files      map[string]UploadedFile
	bodyErr    error
	method     string
	path       string
}

// NewRequest normalizes the input. It never fails: any parse failure falls
// back to empty structures, and the decode error of the chosen body source
// is kept for BodyError.
func NewRequest(in RequestInput) *Request {
	r := &Request{
		ctx:       in.Context,
		header:    in.Header,
		transport: in.Transport,
		method:    NormalizeMethod(in.Method),
		path:      NormalizePath(in.URI),
		query:     decodeValues(in.Query),
		params:    map[string]any{},
		files:     normalizeFiles(in.Files),

		respHeader: http.Header{},
	}
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	if r.header == nil {
		r.header = http.Header{}
	}
	if r.transport == nil {
		r.transport = sessiontransport.NewMemory()
	}
	r.body, r.bodyErr = resolveBody(in.Body, in.Form)
	return r
}

// NormalizeMethod upper-cases the verb; empty means GET.
func NormalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return http.MethodGet
	}
	return method
}

// NormalizePath keeps only the path component of uri, drops trailing
// slashes and maps the empty path to "/".
func NormalizePath(uri string) string {
	p := uri
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return p
}

// resolveBody picks exactly one body source: a JSON object, then a
// url-encoded string, then the form fallback.
func resolveBody(raw []byte, form map[string]any) (map[string]any, error) {
	var jsonErr error
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 {
		obj, err := decodeJSONObject(raw)
		if err != nil {
			jsonErr = err
		}
		if obj != nil {
			return obj, nil
		}

		// Malformed pairs are dropped; the rest of the body is kept.
		if bytes.IndexByte(raw, '=') >= 0 {
			if vals, err := url.ParseQuery(string(raw)); len(vals) > 0 {
				return decodeValues(vals), err
			}
		}
	}

	body := make(map[string]any, len(form))
	for k, v := range form {
		body[k] = v
	}
	return body, jsonErr
}

// decodeJSONObject returns the decoded object, or nil if raw holds valid
// JSON of another shape. Numbers are kept as json.Number.
func decodeJSONObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingJSON
	}

	obj, _ := v.(map[string]any)
	return obj, nil
}

// decodeValues flattens url values: one value stays a string, repeated
// keys and "key[]" keys become lists.
func decodeValues(vals url.Values) map[string]any {
	out := make(map[string]any, len(vals))
	for key, vs := range vals {
		name, isList := strings.CutSuffix(key, "[]")
		if !isList && len(vs) == 1 {
			out[name] = vs[0]
			continue
		}
		list, _ := out[name].([]any)
		for _, v := range vs {
			list = append(list, v)
		}
		out[name] = list
	}
	return out
}

func (r *Request) Context() context.Context {
	return r.ctx
}

// Method returns the normalized HTTP verb.
func (r *Request) Method() string {
	return r.method
}

// Path returns the normalized path.
func (r *Request) Path() string {
	return r.path
}

// Header returns the inbound header value by name.
func (r *Request) Header(name string) string {
	return r.header.Get(name)
}

// SetResponseHeader sets a header on the eventual response.
func (r *Request) SetResponseHeader(name, value string) {
	r.respHeader.Set(name, value)
}

// ResponseHeader returns the headers collected for the response.
func (r *Request) ResponseHeader() http.Header {
	return r.respHeader
}

// Query returns the decoded query map.
func (r *Request) Query() map[string]any {
	return r.query
}

// Body returns the resolved body map.
func (r *Request) Body() map[string]any {
	return r.body
}

// BodyError returns the decode error of the raw body, if any.
// It is diagnostic only; a bad body never fails construction.
func (r *Request) BodyError() error {
	return r.bodyErr
}

// Params returns the route parameters.
func (r *Request) Params() map[string]any {
	return r.params
}

// SetParam stores a route parameter.
func (r *Request) SetParam(key string, value any) {
	r.params[key] = value
}

// Files returns the accepted upload descriptors keyed by field name.
func (r *Request) Files() map[string]UploadedFile {
	return r.files
}

// File returns one upload descriptor.
func (r *Request) File(name string) (UploadedFile, bool) {
	f, ok := r.files[name]
	return f, ok
}

// Transport returns the per-request session transport.
func (r *Request) Transport() sessiontransport.Transport {
	return r.transport
}

// Auth returns the verified claims, or nil for anonymous requests.
func (r *Request) Auth() map[string]any {
	return r.auth
}

// SetAuth attaches verified claims. A nil or empty map clears identity.
func (r *Request) SetAuth(claims map[string]any) {
	if len(claims) == 0 {
		r.auth = nil
		return
	}
	r.auth = claims
}

// IsAuthenticated reports whether claims are attached.
func (r *Request) IsAuthenticated() bool {
	return len(r.auth) > 0
}

// SetContext replaces the request context.
func (r *Request) SetContext(ctx context.Context) {
	if ctx != nil {
		r.ctx = ctx
	}
}

// Set stores a value in the request context.
func (r *Request) Set(key, value any) {
	r.ctx = context.WithValue(r.ctx, key, value)
}

// Get retrieves a value from the request context.
func (r *Request) Get(key any) any {
	return r.ctx.Value(key)
}

// Lookup finds key in route parameters, then query, then body.
func (r *Request) Lookup(key string) (any, bool) {
	for _, src := range []map[string]any{r.params, r.query, r.body} {
		if v, ok := src[key]; ok {
			return v, true
		}
	}
	return nil, false
}
