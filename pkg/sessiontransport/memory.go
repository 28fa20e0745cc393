package sessiontransport

import (
	"sync"
	"time"
)

// Memory is an in-process Transport for tests and non-HTTP callers.
// Values past their expiry read as absent. It may be shared across
// dispatches to simulate a client cookie jar.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	expiresAt time.Time
	value     string
}

var _ Transport = (*Memory)(nil)

// MemoryOption configures a Memory transport.
type MemoryOption func(*Memory)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-memory transport.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok || m.expired(e) {
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(name, value string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = entry{value: value, expiresAt: expiresAt}
}

func (m *Memory) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, name)
}

// Expiry returns the expiry recorded for name.
func (m *Memory) Expiry(name string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	return e.expiresAt, ok
}

// A zero expiry never expires.
func (m *Memory) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
