package backends

import (
	"context"

	"github.com/hashicorp-forge/adminportal/pkg/models"
	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// AuditStore persists notification records.
type AuditStore interface {
	Record(ctx context.Context, rec *models.NotificationRecord) error
}

// AuditBackend keeps a durable trail of every notification shown to admins.
type AuditBackend struct {
	levels
	store AuditStore
}

// NewAuditBackend creates a new audit backend
func NewAuditBackend(store AuditStore, accept []string) *AuditBackend {
	return &AuditBackend{levels: newLevels(accept), store: store}
}

// Name returns the backend identifier
func (b *AuditBackend) Name() string {
	return "audit"
}

// Handle processes a notification
func (b *AuditBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	rec := &models.NotificationRecord{
		NotificationID: n.ID,
		Level:          string(n.Level),
		Text:           n.Text,
		Operation:      n.Operation,
		Actor:          n.Actor,
		CreatedAt:      n.Timestamp,
	}
	if err := b.store.Record(ctx, rec); err != nil {
		return NewBackendError("audit", "record", false, err)
	}
	return nil
}
