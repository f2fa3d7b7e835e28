package backends

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// LogBackend writes notifications to the structured logger.
type LogBackend struct {
	levels
	log hclog.Logger
}

// NewLogBackend creates a log backend.
func NewLogBackend(log hclog.Logger, accept []string) *LogBackend {
	return &LogBackend{levels: newLevels(accept), log: log}
}

// Name returns the backend identifier
func (b *LogBackend) Name() string {
	return "log"
}

// Handle processes a notification
func (b *LogBackend) Handle(_ context.Context, n *notifications.Notification) error {
	args := []interface{}{
		"id", n.ID,
		"operation", n.Operation,
	}
	if n.Actor != "" {
		args = append(args, "actor", n.Actor)
	}
	if n.Level == notifications.LevelError {
		b.log.Error(n.Text, args...)
	} else {
		b.log.Info(n.Text, args...)
	}
	return nil
}
