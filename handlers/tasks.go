package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/todo"
	"github.com/dmitrymomot/todo/middlewares"
	"github.com/dmitrymomot/todo/pkg/logger"
	"github.com/dmitrymomot/todo/pkg/sanitizer"
	"github.com/dmitrymomot/todo/store"
)

// Pagination and input limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	MaxTitleLength = 200
)

// TaskHandler serves the task endpoints of the signed-in user.
type TaskHandler struct {
	tasks store.Tasks
	log   *slog.Logger
}

// TaskOption configures the TaskHandler.
type TaskOption func(*TaskHandler)

// WithTaskLogger sets the logger.
func WithTaskLogger(l *slog.Logger) TaskOption {
	return func(h *TaskHandler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewTasks creates the task handler.
func NewTasks(tasks store.Tasks, opts ...TaskOption) *TaskHandler {
	h := &TaskHandler{tasks: tasks, log: logger.NewNope()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TaskHandler) Routes(r *todo.Router) {
	auth := middlewares.RequireAuthenticated()
	r.GET("/tasks", h.list, auth)
	r.POST("/tasks", h.create, auth)
	r.GET("/tasks/show", h.show, auth)
	r.PUT("/tasks", h.update, auth)
	r.DELETE("/tasks", h.remove, auth)
}

func (h *TaskHandler) list(r *todo.Request) (any, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	page, err := todo.OptionalInt(r, "page", 1, "Page must be a positive integer")
	if err != nil {
		return nil, err
	}
	perPage, err := todo.OptionalInt(r, "per_page", DefaultPerPage, "Per page must be a positive integer")
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, todo.ErrValidation("Page must be a positive integer")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return nil, todo.ErrValidation(fmt.Sprintf("Per page must be between 1 and %d", MaxPerPage))
	}

	total, err := h.tasks.CountTasks(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	tasks, err := h.tasks.ListTasks(r.Context(), userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	return todo.Success("Tasks").
		WithPayload(tasks).
		WithTotalPages(TotalPages(total, perPage)), nil
}

func (h *TaskHandler) create(r *todo.Request) (any, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	title, err := readTitle(r)
	if err != nil {
		return nil, err
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, todo.ErrUnauthorized("Unauthorized: account no longer exists")
		}
		return nil, err
	}
	h.log.DebugContext(r.Context(), "task created", slog.String("task_id", task.ID.String()))
	return todo.Success("Task created").WithPayload(task), nil
}

func (h *TaskHandler) show(r *todo.Request) (any, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := taskID(r)
	if err != nil {
		return nil, err
	}

	task, err := h.tasks.TaskByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, todo.NewError(todo.KindNotFound, "Task not found", todo.WithCause(err))
		}
		return nil, err
	}
	return todo.Success("Task").WithPayload(task), nil
}

func (h *TaskHandler) update(r *todo.Request) (any, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := taskID(r)
	if err != nil {
		return nil, err
	}

	var upd store.TaskUpdate
	if _, ok := r.Lookup("title"); ok {
		title, err := readTitle(r)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if _, ok := r.Lookup("done"); ok {
		done, err := todo.RequireBool(r, "done", "Done must be true or false")
		if err != nil {
			return nil, err
		}
		upd.Done = &done
	}
	if upd.Empty() {
		return nil, todo.ErrValidation("Nothing to update: provide title or done")
	}

	n, err := h.tasks.UpdateTask(r.Context(), userID, id, upd)
	if err := todo.EnsureOperationSucceeded(todo.ResultOf(n, err), "update task"); err != nil {
		return nil, err
	}

	task, err := h.tasks.TaskByID(r.Context(), userID, id)
	if err != nil {
		return nil, err
	}
	return todo.Success("Task updated").WithPayload(task), nil
}

func (h *TaskHandler) remove(r *todo.Request) (any, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := taskID(r)
	if err != nil {
		return nil, err
	}

	n, err := h.tasks.DeleteTask(r.Context(), userID, id)
	if err := todo.EnsureOperationSucceeded(todo.ResultOf(n, err), "delete task"); err != nil {
		return nil, err
	}
	return todo.Success("Task deleted"), nil
}

// TotalPages returns the number of pages needed for total items; an empty
// list still has one page.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

func taskID(r *todo.Request) (uuid.UUID, error) {
	raw, err := todo.RequireString(r, "id", "Task id is required")
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, todo.ErrValidation("Task id is invalid", todo.WithCause(err))
	}
	return id, nil
}

// readTitle returns the sanitized title; markup-only or blank titles are
// rejected.
func readTitle(r *todo.Request) (string, error) {
	title := sanitizer.Text(todo.OptionalString(r, "title"))
	if title == "" {
		return "", todo.ErrValidation("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", todo.ErrValidation(fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}
	return title, nil
}
