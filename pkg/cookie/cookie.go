package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Errors.
var (
	ErrNotFound = errors.New("cookie: not found")
)

// Config holds cookie attributes loaded from the environment.
type Config struct {
	Domain string `env:"COOKIE_DOMAIN"`
	Path   string `env:"COOKIE_PATH" envDefault:"/"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

// Manager writes cookies with shared attributes.
// Defaults are Path "/", HttpOnly, Secure and SameSite=Strict.
type Manager struct {
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		secure:   true,
		httpOnly: true,
		sameSite: http.SameSiteStrictMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a Manager from Config plus extra options.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	base := []Option{
		WithDomain(cfg.Domain),
		WithSecure(cfg.Secure),
	}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	return New(append(base, opts...)...)
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a cookie with a relative lifetime in seconds.
// Zero maxAge makes it a browser-session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.Cookie(name, value, maxAge))
}

// SetUntil sets a cookie that expires at the given instant.
func (m *Manager) SetUntil(w http.ResponseWriter, name, value string, expiresAt time.Time) {
	http.SetCookie(w, m.CookieUntil(name, value, expiresAt))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.Cookie(name, "", -1))
}

// Cookie builds a cookie with the manager's defaults.
func (m *Manager) Cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// CookieUntil builds a cookie with an absolute expiry.
// MaxAge is derived from expiresAt so both attributes agree.
func (m *Manager) CookieUntil(name, value string, expiresAt time.Time) *http.Cookie {
	c := m.Cookie(name, value, 0)
	c.Expires = expiresAt.UTC()
	if ttl := time.Until(expiresAt); ttl > 0 {
		c.MaxAge = int(ttl.Round(time.Second) / time.Second)
	} else {
		c.MaxAge = -1
	}
	return c
}
