package backends

import (
	"fmt"
	"strings"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// Backend is a notification handler that can be built from configuration.
type Backend interface {
	notifications.Handler
}

// levels filters notifications by level. An empty set accepts everything.
type levels map[notifications.Level]bool

func newLevels(names []string) levels {
	if len(names) == 0 {
		return nil
	}
	l := make(levels, len(names))
	for _, n := range names {
		l[notifications.Level(strings.ToLower(strings.TrimSpace(n)))] = true
	}
	return l
}

func (l levels) Accepts(level notifications.Level) bool {
	if len(l) == 0 {
		return true
	}
	return l[level]
}

// BackendError represents an error from a specific backend
type BackendError struct {
	Backend   string // Backend name (e.g., "ntfy", "kafka")
	Operation string // Operation that failed (e.g., "send", "record")
	Retryable bool   // Whether the error is retryable
	Err       error  // Underlying error
}

func (e *BackendError) Error() string {
	retryability := "permanent"
	if e.Retryable {
		retryability = "retryable"
	}
	return fmt.Sprintf("%s backend error (%s, %s): %v", e.Backend, e.Operation, retryability, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *BackendError) IsRetryable() bool {
	return e.Retryable
}

// NewBackendError creates a new backend error
func NewBackendError(backend, operation string, retryable bool, err error) *BackendError {
	return &BackendError{
		Backend:   backend,
		Operation: operation,
		Retryable: retryable,
		Err:       err,
	}
}

// isRetryableHTTPStatus determines if an HTTP status code represents a retryable error
func isRetryableHTTPStatus(status int) bool {
	// Retryable: 5xx (server errors), 429 (rate limit), 408 (timeout)
	switch {
	case status >= 500:
		return true
	case status == 429:
		return true
	case status == 408:
		return true
	default:
		return false
	}
}
