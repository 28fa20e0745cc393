package handlers

import (
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/todo"
	"github.com/dmitrymomot/todo/middlewares"
	"github.com/dmitrymomot/todo/pkg/logger"
	"github.com/dmitrymomot/todo/pkg/sanitizer"
	"github.com/dmitrymomot/todo/pkg/session"
	"github.com/dmitrymomot/todo/pkg/token"
	"github.com/dmitrymomot/todo/store"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

const errInvalidCredentials = "Unauthorized: invalid email or password"

// AuthHandler serves account endpoints.
type AuthHandler struct {
	users        store.Users
	sessions     *session.Manager
	log          *slog.Logger
	passwordCost int
}

// AuthOption configures the AuthHandler.
type AuthOption func(*AuthHandler)

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(h *AuthHandler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithPasswordCost sets the bcrypt cost. Zero keeps the library default.
func WithPasswordCost(cost int) AuthOption {
	return func(h *AuthHandler) {
		h.passwordCost = cost
	}
}

// NewAuth creates the account handler.
func NewAuth(users store.Users, sessions *session.Manager, opts ...AuthOption) *AuthHandler {
	h := &AuthHandler{
		users:    users,
		sessions: sessions,
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AuthHandler) Routes(r *todo.Router) {
	r.POST("/signup", h.signup)
	r.POST("/signin", h.signin)
	r.POST("/signout", h.signout)
	r.GET("/me", h.me, middlewares.RequireAuthenticated())
	r.DELETE("/me", h.deleteAccount, middlewares.RequireAuthenticated())
}

func (h *AuthHandler) signup(r *todo.Request) (any, error) {
	email, err := todo.RequireEmail(r, "email", "A valid email address is required")
	if err != nil {
		return nil, err
	}
	password, err := todo.RequireString(r, "password", "Password is required")
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, todo.ErrValidation("Password must be at least 8 characters")
	}

	hash, err := store.HashPassword(password, h.passwordCost)
	if err != nil {
		return nil, err
	}
	user, err := h.users.CreateUser(r.Context(), sanitizer.Email(email), hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, todo.ErrValidation("Email is already registered", todo.WithCause(err))
		}
		return nil, err
	}

	if err := h.startSession(r, user); err != nil {
		return nil, err
	}
	h.log.InfoContext(r.Context(), "account created", slog.String("user_id", user.ID.String()))
	return todo.Success("Account created").WithPayload(user), nil
}

func (h *AuthHandler) signin(r *todo.Request) (any, error) {
	email, err := todo.RequireEmail(r, "email", "A valid email address is required")
	if err != nil {
		return nil, err
	}
	password, err := todo.RequireString(r, "password", "Password is required")
	if err != nil {
		return nil, err
	}

	user, err := h.users.UserByEmail(r.Context(), sanitizer.Email(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, todo.ErrUnauthorized(errInvalidCredentials)
		}
		return nil, err
	}
	if err := store.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, todo.ErrUnauthorized(errInvalidCredentials, todo.WithCause(err))
	}

	if err := h.startSession(r, user); err != nil {
		return nil, err
	}
	return todo.Success("Signed in").WithPayload(user), nil
}

func (h *AuthHandler) signout(r *todo.Request) (any, error) {
	h.sessions.End(r.Transport())
	r.SetAuth(nil)
	return todo.Success("Signed out"), nil
}

func (h *AuthHandler) me(r *todo.Request) (any, error) {
	user, err := h.currentUser(r)
	if err != nil {
		return nil, err
	}
	return todo.Success("Account").WithPayload(user), nil
}

func (h *AuthHandler) deleteAccount(r *todo.Request) (any, error) {
	id, err := currentUserID(r)
	if err != nil {
		return nil, err
	}
	n, err := h.users.DeleteUser(r.Context(), id)
	if err := todo.EnsureOperationSucceeded(todo.ResultOf(n, err), "delete account"); err != nil {
		return nil, err
	}

	h.sessions.End(r.Transport())
	r.SetAuth(nil)
	h.log.InfoContext(r.Context(), "account deleted", slog.String("user_id", id.String()))
	return todo.Success("Account deleted"), nil
}

// currentUser loads the account of the session. A session that outlived
// its account is ended.
func (h *AuthHandler) currentUser(r *todo.Request) (store.User, error) {
	id, err := currentUserID(r)
	if err != nil {
		return store.User{}, err
	}
	user, err := h.users.UserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.sessions.End(r.Transport())
			return store.User{}, todo.ErrUnauthorized("Unauthorized: account no longer exists")
		}
		return store.User{}, err
	}
	return user, nil
}

func (h *AuthHandler) startSession(r *todo.Request, user store.User) error {
	claims := token.Claims{
		middlewares.ClaimUserID: user.ID.String(),
		"email":                 user.Email,
	}
	if _, err := h.sessions.Start(r.Transport(), claims); err != nil {
		return err
	}
	r.SetAuth(claims)
	return nil
}

// currentUserID parses the identity claim attached by RefreshIdentity.
func currentUserID(r *todo.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middlewares.UserID(r))
	if err != nil {
		return uuid.Nil, todo.ErrUnauthorized("Unauthorized: invalid identity")
	}
	return id, nil
}
