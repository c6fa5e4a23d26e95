package domain

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	Action     string            `json:"action" gorm:"type:text;not null;index:ix_audit_logs_action"`
	TargetType string            `json:"target_type" gorm:"type:text;not null"`
	TargetID   *string           `json:"target_id,omitempty" gorm:"type:text"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:ix_audit_logs_created"`
}

func (AuditLog) TableName() string { return "audit_logs" }
