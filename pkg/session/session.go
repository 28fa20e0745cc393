package session

import (
	"fmt"

	"github.com/dmitrymomot/todo/pkg/sessiontransport"
	"github.com/dmitrymomot/todo/pkg/token"
)

const defaultCookieName = "todo_session"

// State is the outcome of resuming a session on one request.
type State uint8

const (
	// Anonymous means no token was present or it failed verification.
	Anonymous State = iota
	// Authenticated means a valid token was found and kept as is.
	Authenticated
	// Rotated means a valid token was found and replaced with a fresh one.
	Rotated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Rotated:
		return "rotated"
	default:
		return "anonymous"
	}
}

// IsAuthenticated reports whether the state carries an identity.
func (s State) IsAuthenticated() bool {
	return s != Anonymous
}

// Config configures the session manager.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"todo_session"`
}

// Manager runs the stateless session lifecycle: the token is the session,
// and the client transport is its only storage.
type Manager struct {
	tokens *token.Service
	name   string
}

// Option configures the Manager.
type Option func(*Manager)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// New creates a Manager over the token service.
func New(tokens *token.Service, opts ...Option) *Manager {
	m := &Manager{
		tokens: tokens,
		name:   defaultCookieName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a Manager from Config.
func NewFromConfig(tokens *token.Service, cfg Config) *Manager {
	return New(tokens, WithCookieName(cfg.CookieName))
}

// CookieName returns the name under which the token is stored.
func (m *Manager) CookieName() string {
	return m.name
}

// Tokens returns the underlying token service.
func (m *Manager) Tokens() *token.Service {
	return m.tokens
}

// Start issues a token for the identity claims and stores it via t.
// It returns the issued token.
func (m *Manager) Start(t sessiontransport.Transport, claims token.Claims) (string, error) {
	if len(claims) == 0 {
		return "", ErrNoIdentity
	}
	now := m.tokens.Now()
	tok, err := m.tokens.CreateAt(claims, now)
	if err != nil {
		return "", fmt.Errorf("session: create token: %w", err)
	}
	t.Set(m.name, tok, now.Add(m.tokens.Lifetime()))
	return tok, nil
}

// Resume reads the token from t and verifies it. When the token is close
// to expiry it is replaced with a fresh one. Resume never fails: any
// problem leaves the caller anonymous.
func (m *Manager) Resume(t sessiontransport.Transport) (token.Claims, State) {
	raw, ok := t.Get(m.name)
	if !ok {
		return nil, Anonymous
	}

	now := m.tokens.Now()
	claims, ok := m.tokens.VerifyAt(raw, now)
	if !ok {
		return nil, Anonymous
	}
	if !m.tokens.ShouldRefreshAt(claims, now) {
		return claims, Authenticated
	}

	fresh, err := m.tokens.RefreshAt(claims, now)
	if err != nil {
		return claims, Authenticated
	}
	t.Set(m.name, fresh, now.Add(m.tokens.Lifetime()))
	return claims, Rotated
}

// End removes the token from t.
func (m *Manager) End(t sessiontransport.Transport) {
	t.Delete(m.name)
}

// Value is a typed helper to read a claim.
// Returns ErrNotFound if the key is missing and ErrTypeMismatch if the
// claim holds another type.
func Value[T any](claims map[string]any, key string) (T, error) {
	var zero T
	val, ok := claims[key]
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, key)
	}
	return typed, nil
}

// ValueOr returns the claim or defaultVal when it is missing or mistyped.
func ValueOr[T any](claims map[string]any, key string, defaultVal T) T {
	val, err := Value[T](claims, key)
	if err != nil {
		return defaultVal
	}
	return val
}
