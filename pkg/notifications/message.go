package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Level is the outcome a notification reports.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one user-facing message emitted for an admin operation.
type Notification struct {
	ID        string    `json:"id"`                  // Unique notification ID (UUID)
	Level     Level     `json:"level"`               // success or error
	Text      string    `json:"text"`                // Message shown to the user
	Operation string    `json:"operation,omitempty"` // e.g. "tenants.create"
	Actor     string    `json:"actor,omitempty"`     // Authenticated username, when known
	Timestamp time.Time `json:"timestamp"`
}

// New builds a notification stamped with a fresh ID and the current time.
func New(level Level, text, operation string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Text:      text,
		Operation: operation,
		Timestamp: time.Now().UTC(),
	}
}
