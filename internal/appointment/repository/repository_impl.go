package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redbarber/pos/internal/appointment/domain"
	"github.com/redbarber/pos/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, appt *domain.Appointment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO appointments (id, worker_id, service_id, customer_name, scheduled_at, status, completed_at, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID,
		appt.WorkerID,
		appt.ServiceID,
		appt.CustomerName,
		appt.ScheduledAt,
		appt.Status,
		appt.CompletedAt,
		appt.Note,
		appt.CreatedAt,
		appt.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := db.WithContext(ctx).Raw(
		`SELECT id, worker_id, service_id, customer_name, scheduled_at, status, completed_at, note, created_at, updated_at
		 FROM appointments WHERE id = ?`,
		id,
	).Scan(&appt).Error
	if err != nil {
		return nil, err
	}
	if appt.ID == 0 {
		return nil, nil
	}
	return &appt, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Appointment, error) {
	var items []domain.Appointment
	stmt := db.WithContext(ctx).Model(&domain.Appointment{})

	if workerID := strings.TrimSpace(filter.WorkerID); workerID != "" {
		parsed, err := snowflake.ParseString(workerID)
		if err != nil {
			return nil, domain.ErrInvalidWorker
		}
		stmt = stmt.Where("worker_id = ?", parsed.Int64())
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at":   true,
		"scheduled_at": true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) MarkCompleted(ctx context.Context, db *gorm.DB, id int64, completedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE appointments
		 SET status = ?, completed_at = ?, updated_at = ?
		 WHERE id = ? AND status <> ?`,
		domain.StatusCompleted,
		completedAt,
		completedAt,
		id,
		domain.StatusCompleted,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status string, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		updatedAt,
		id,
	).Error
}
