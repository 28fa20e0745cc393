package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when a claim does not exist.
	ErrNotFound = errors.New("session: claim not found")

	// ErrTypeMismatch is returned when a claim has an unexpected type.
	ErrTypeMismatch = errors.New("session: claim type mismatch")

	// ErrNoIdentity is returned when starting a session without claims.
	ErrNoIdentity = errors.New("session: identity claims are required")
)
