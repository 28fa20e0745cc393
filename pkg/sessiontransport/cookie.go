package sessiontransport

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/todo/pkg/cookie"
)

// Cookie is a Transport backed by HTTP cookies for one request.
// Writes are visible to later reads within the same request.
type Cookie struct {
	w       http.ResponseWriter
	r       *http.Request
	manager *cookie.Manager
	pending map[string]*string
}

var _ Transport = (*Cookie)(nil)

// NewCookie binds a cookie transport to a request/response pair.
// A nil manager uses cookie.New() defaults.
func NewCookie(w http.ResponseWriter, r *http.Request, m *cookie.Manager) *Cookie {
	if m == nil {
		m = cookie.New()
	}
	return &Cookie{
		w:       w,
		r:       r,
		manager: m,
		pending: make(map[string]*string),
	}
}

func (c *Cookie) Get(name string) (string, bool) {
	if v, ok := c.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	v, err := c.manager.Get(c.r, name)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (c *Cookie) Set(name, value string, expiresAt time.Time) {
	c.pending[name] = &value
	c.manager.SetUntil(c.w, name, value, expiresAt)
}

func (c *Cookie) Delete(name string) {
	c.pending[name] = nil
	c.manager.Delete(c.w, name)
}
