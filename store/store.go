package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("store: not found")
	ErrEmailTaken = errors.New("store: email already registered")
)

// User is a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Task is one to-do item owned by a user.
type Task struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskUpdate lists the fields to change. Nil fields are left as is.
type TaskUpdate struct {
	Title *string
	Done  *bool
}

// Empty reports whether the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Done == nil
}

// Users persists accounts. Emails are stored as given; callers normalize.
type Users interface {
	CreateUser(ctx context.Context, email string, passwordHash []byte) (User, error)
	UserByID(ctx context.Context, id uuid.UUID) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	// DeleteUser removes the account with all its tasks and returns the
	// number of deleted accounts.
	DeleteUser(ctx context.Context, id uuid.UUID) (int64, error)
}

// Tasks persists to-do items. Every call is scoped to the owner, so a task
// of another user behaves as if it does not exist.
type Tasks interface {
	CreateTask(ctx context.Context, userID uuid.UUID, title string) (Task, error)
	TaskByID(ctx context.Context, userID, id uuid.UUID) (Task, error)
	// ListTasks returns tasks newest first.
	ListTasks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, error)
	CountTasks(ctx context.Context, userID uuid.UUID) (int, error)
	// UpdateTask returns the number of updated rows.
	UpdateTask(ctx context.Context, userID, id uuid.UUID, upd TaskUpdate) (int64, error)
	// DeleteTask returns the number of deleted rows.
	DeleteTask(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// Store is the full persistence surface used by the handlers.
type Store interface {
	Users
	Tasks
}
