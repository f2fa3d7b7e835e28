package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// AuditStore reads and writes notification records.
type AuditStore struct {
	db *gorm.DB
}

// NewAuditStore wraps a migrated database.
func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Record inserts rec. A notification ID is recorded once; later records with
// the same ID are ignored.
func (s *AuditStore) Record(ctx context.Context, rec *models.NotificationRecord) error {
	err := s.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error recording notification %s: %w", rec.NotificationID, err)
	}
	return nil
}

// AuditFilter narrows List results. Zero values match everything.
type AuditFilter struct {
	Since     time.Time
	Level     string
	Operation string
	Actor     string
	Limit     int
}

// List returns matching records, newest first.
func (s *AuditStore) List(ctx context.Context, f AuditFilter) ([]models.NotificationRecord, error) {
	q := s.db.WithContext(ctx).Model(&models.NotificationRecord{})
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if f.Operation != "" {
		q = q.Where("operation = ?", f.Operation)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	var records []models.NotificationRecord
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error listing notification records: %w", err)
	}
	return records, nil
}

// Prune deletes records older than cutoff and returns how many were removed.
func (s *AuditStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.NotificationRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("error pruning notification records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
