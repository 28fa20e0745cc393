package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
)

// RequireString returns the trimmed value of key, looked up in route
// parameters, then query, then body. Numbers are accepted in their
// decimal form. Missing or blank values fail with a validation error
// carrying msg.
func RequireString(r *Request, key, msg string) (string, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return "", ErrValidation(msg)
	}
	s, ok := stringValue(v)
	if !ok || s == "" {
		return "", ErrValidation(msg)
	}
	return s, nil
}

// OptionalString returns the trimmed value of key or "" when absent.
func OptionalString(r *Request, key string) string {
	v, ok := r.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := stringValue(v)
	return s
}

// RequireInt returns key as an integer. Integral strings and numbers
// are accepted.
func RequireInt(r *Request, key, msg string) (int, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return 0, ErrValidation(msg)
	}
	n, ok := intValue(v)
	if !ok {
		return 0, ErrValidation(msg)
	}
	return n, nil
}

// OptionalInt returns key as an integer, or def when absent or blank.
// A present value that is not an integer is a validation error.
func OptionalInt(r *Request, key string, def int, msg string) (int, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return def, nil
	}
	n, ok := intValue(v)
	if !ok {
		return 0, ErrValidation(msg)
	}
	return n, nil
}

// RequireBool returns key as a boolean. Accepted values are true, false,
// 1 and 0, as booleans, numbers or strings.
func RequireBool(r *Request, key, msg string) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return false, ErrValidation(msg)
	}
	b, ok := boolValue(v)
	if !ok {
		return false, ErrValidation(msg)
	}
	return b, nil
}

// RequireEmail returns key as a bare email address. Display-name forms
// such as "Bob <bob@example.com>" are rejected.
func RequireEmail(r *Request, key, msg string) (string, error) {
	s, err := RequireString(r, key, msg)
	if err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return "", ErrValidation(msg)
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || !strings.Contains(s[at+1:], ".") {
		return "", ErrValidation(msg)
	}
	return s, nil
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}

func intValue(v any) (int, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	n, ok := integer(v)
	if !ok || n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}

func boolValue(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return false, false
	}
	n, ok := integer(v)
	if !ok || (n != 0 && n != 1) {
		return false, false
	}
	return n == 1, true
}

// OperationResult is the outcome of a downstream write.
type OperationResult struct {
	Err     error
	Changed int64
	Success bool
}

// ResultOf builds an OperationResult from a row count and error.
func ResultOf(changed int64, err error) OperationResult {
	return OperationResult{Success: err == nil, Changed: changed, Err: err}
}

// EnsureOperationSucceeded fails with an operational error when the
// operation failed or changed nothing. action completes the phrase
// "Failed to ...".
func EnsureOperationSucceeded(res OperationResult, action string) error {
	if !res.Success || res.Err != nil {
		reason := "unknown error"
		if res.Err != nil {
			reason = res.Err.Error()
		}
		return ErrOperational(fmt.Sprintf("Failed to %s: %s", action, reason), WithCause(res.Err))
	}
	if res.Changed <= 0 {
		return ErrOperational(fmt.Sprintf("Failed to %s: no changes were made", action))
	}
	return nil
}
