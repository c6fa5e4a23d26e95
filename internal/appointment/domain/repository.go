package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, appt *Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Appointment, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Appointment, error)
	// MarkCompleted is idempotent: completing an already-completed
	// appointment is a no-op.
	MarkCompleted(ctx context.Context, db *gorm.DB, id int64, completedAt time.Time) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status string, updatedAt time.Time) error
}
