package middlewares

import (
	"github.com/dmitrymomot/todo/internal"
	"github.com/dmitrymomot/todo/pkg/session"
)

// sessionStateKey is the context key for the session state of the request.
type sessionStateKey struct{}

// RefreshIdentity returns middleware that resumes the session carried by
// the request transport. Valid claims are attached to the request; a token
// close to expiry is rotated in place. It never fails the request: a
// missing or invalid token leaves the request anonymous.
func RefreshIdentity(mgr *session.Manager) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(r *internal.Request) (any, error) {
			claims, state := mgr.Resume(r.Transport())
			r.SetAuth(claims)
			r.Set(sessionStateKey{}, state)
			return next(r)
		}
	}
}

// RequireAuthenticated returns middleware that rejects anonymous requests.
// It must run after RefreshIdentity.
func RequireAuthenticated() internal.Middleware {
	return internal.Before(func(r *internal.Request) error {
		if !r.IsAuthenticated() {
			return internal.ErrUnauthorized("Unauthorized: authentication required")
		}
		return nil
	})
}

// SessionState returns how the session was resumed for this request.
func SessionState(r *internal.Request) session.State {
	if s, ok := r.Get(sessionStateKey{}).(session.State); ok {
		return s
	}
	return session.Anonymous
}

// UserID returns the "user_id" claim of the authenticated identity.
func UserID(r *internal.Request) string {
	return session.ValueOr(r.Auth(), ClaimUserID, "")
}

// ClaimUserID is the claim that carries the account identifier.
const ClaimUserID = "user_id"
