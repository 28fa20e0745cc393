package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a Store kept in process memory. Used when no database is
// configured and in tests.
type Memory struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]User
	emails map[string]uuid.UUID
	tasks  map[uuid.UUID]Task
	now    func() time.Time
}

// MemoryOption configures Memory.
type MemoryOption func(*Memory)

// WithMemoryClock overrides the clock used for timestamps.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		users:  make(map[uuid.UUID]User),
		emails: make(map[string]uuid.UUID),
		tasks:  make(map[uuid.UUID]Task),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) CreateUser(ctx context.Context, email string, passwordHash []byte) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.emails[email]; ok {
		return User{}, ErrEmailTaken
	}
	u := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: slices.Clone(passwordHash),
		CreatedAt:    m.now().UTC(),
	}
	m.users[u.ID] = u
	m.emails[email] = u.ID
	return u, nil
}

func (m *Memory) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *Memory) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	for tid, t := range m.tasks {
		if t.UserID == id {
			delete(m.tasks, tid)
		}
	}
	delete(m.emails, u.Email)
	delete(m.users, id)
	return 1, nil
}

func (m *Memory) CreateTask(ctx context.Context, userID uuid.UUID, title string) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; !ok {
		return Task{}, ErrNotFound
	}
	now := m.now().UTC()
	t := Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *Memory) TaskByID(ctx context.Context, userID, id uuid.UUID) (Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) ListTasks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, error) {
	m.mu.RLock()
	owned := make([]Task, 0)
	for _, t := range m.tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(owned, func(a, b Task) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})

	offset = max(offset, 0)
	if offset >= len(owned) {
		return []Task{}, nil
	}
	end := len(owned)
	if limit > 0 {
		end = min(offset+limit, end)
	}
	return owned[offset:end], nil
}

func (m *Memory) CountTasks(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, t := range m.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *Memory) UpdateTask(ctx context.Context, userID, id uuid.UUID, upd TaskUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.UserID != userID || upd.Empty() {
		return 0, nil
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Done != nil {
		t.Done = *upd.Done
	}
	t.UpdatedAt = m.now().UTC()
	m.tasks[id] = t
	return 1, nil
}

func (m *Memory) DeleteTask(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}
