package repository

import (
	"context"

	"github.com/redbarber/pos/internal/worker/domain"
	"github.com/redbarber/pos/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, worker *domain.Worker) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO workers (id, name, type, commission_pct, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		worker.ID,
		worker.Name,
		worker.Type,
		worker.CommissionPct,
		worker.Active,
		worker.CreatedAt,
		worker.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Worker, error) {
	var w domain.Worker
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, type, commission_pct, active, created_at, updated_at
		 FROM workers WHERE id = ?`,
		id,
	).Scan(&w).Error
	if err != nil {
		return nil, err
	}
	if w.ID == 0 {
		return nil, nil
	}
	return &w, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Worker, error) {
	var items []domain.Worker
	stmt := db.WithContext(ctx).Model(&domain.Worker{})

	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, worker *domain.Worker) error {
	if worker == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE workers
		 SET name = ?, type = ?, commission_pct = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		worker.Name,
		worker.Type,
		worker.CommissionPct,
		worker.Active,
		worker.UpdatedAt,
		worker.ID,
	).Error
}
