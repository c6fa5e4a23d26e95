package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Before     *time.Time
	Limit      int
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditLog, error)
}
