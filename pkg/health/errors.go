package health

import (
	"errors"
	"strings"
)

var (
	// ErrNotReady is matched by every error Response.Err returns.
	ErrNotReady = errors.New("health: service not ready")

	// ErrProbeTimeout marks a dependency probe cut off by the readiness deadline.
	ErrProbeTimeout = errors.New("health: probe timed out")
)

// DependencyError names the dependencies whose probes failed, sorted.
type DependencyError struct {
	Failed []string
}

func (e *DependencyError) Error() string {
	return ErrNotReady.Error() + ": " + strings.Join(e.Failed, ", ")
}

func (e *DependencyError) Unwrap() error {
	return ErrNotReady
}
