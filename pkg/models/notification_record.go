package models

import (
	"time"
)

// NotificationRecord is the audit trail entry for a notification shown to an
// administrator.
type NotificationRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	NotificationID string `gorm:"uniqueIndex;not null;size:36" json:"notificationId"`
	Level          string `gorm:"index;not null;size:16" json:"level"`
	Text           string `gorm:"not null" json:"text"`
	Operation      string `gorm:"index;size:128" json:"operation,omitempty"`
	Actor          string `gorm:"index;size:255" json:"actor,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName returns the table name for GORM
func (NotificationRecord) TableName() string {
	return "notification_records"
}
