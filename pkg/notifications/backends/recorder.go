package backends

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// FailureMode defines how the recorder backend should behave
type FailureMode string

const (
	// FailureModeNone processes all notifications successfully
	FailureModeNone FailureMode = "none"

	// FailureModeAlways always fails with a retryable error
	FailureModeAlways FailureMode = "always"

	// FailureModePermanent always fails with a permanent error
	FailureModePermanent FailureMode = "permanent"

	// FailureModePanic panics inside Handle
	FailureModePanic FailureMode = "panic"
)

// RecorderBackend keeps every notification in memory. It is used by tests and
// by the interactive console to replay the most recent messages.
type RecorderBackend struct {
	levels
	mu      sync.RWMutex
	mode    FailureMode
	records []*notifications.Notification
}

// NewRecorderBackend creates a recorder that accepts every level.
func NewRecorderBackend(mode FailureMode) *RecorderBackend {
	if mode == "" {
		mode = FailureModeNone
	}
	return &RecorderBackend{mode: mode}
}

// Name returns the backend identifier
func (b *RecorderBackend) Name() string {
	return "recorder"
}

// Handle records n according to the configured failure mode
func (b *RecorderBackend) Handle(_ context.Context, n *notifications.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, n)

	switch b.mode {
	case FailureModeAlways:
		return NewBackendError("recorder", "send", true, errors.New("simulated retryable failure"))
	case FailureModePermanent:
		return NewBackendError("recorder", "send", false, errors.New("simulated permanent failure"))
	case FailureModePanic:
		panic("simulated recorder panic")
	}
	return nil
}

// Notifications returns a copy of all recorded notifications
func (b *RecorderBackend) Notifications() []*notifications.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*notifications.Notification, len(b.records))
	copy(out, b.records)
	return out
}

// Texts returns the recorded texts for level
func (b *RecorderBackend) Texts(level notifications.Level) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []string
	for _, n := range b.records {
		if n.Level == level {
			out = append(out, n.Text)
		}
	}
	return out
}

// Reset clears all recorded notifications
func (b *RecorderBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = nil
}
