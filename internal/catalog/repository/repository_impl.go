package repository

import (
	"context"

	"github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, svc *domain.CatalogService) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO services (id, code, name, type, base_price, free_amount, active, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		svc.ID,
		svc.Code,
		svc.Name,
		svc.Type,
		svc.BasePrice,
		svc.FreeAmount,
		svc.Active,
		svc.Metadata,
		svc.CreatedAt,
		svc.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.CatalogService, error) {
	var svc domain.CatalogService
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, type, base_price, free_amount, active, metadata, created_at, updated_at
		 FROM services WHERE id = ?`,
		id,
	).Scan(&svc).Error
	if err != nil {
		return nil, err
	}
	if svc.ID == 0 {
		return nil, nil
	}
	return &svc, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.CatalogService, error) {
	var svc domain.CatalogService
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, type, base_price, free_amount, active, metadata, created_at, updated_at
		 FROM services WHERE code = ?`,
		code,
	).Scan(&svc).Error
	if err != nil {
		return nil, err
	}
	if svc.ID == 0 {
		return nil, nil
	}
	return &svc, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.CatalogService, error) {
	var items []domain.CatalogService
	stmt := db.WithContext(ctx).Model(&domain.CatalogService{})

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

func (r *repo) Update(ctx context.Context, db *gorm.DB, svc *domain.CatalogService) error {
	if svc == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE services
		 SET name = ?, type = ?, base_price = ?, active = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		svc.Name,
		svc.Type,
		svc.BasePrice,
		svc.Active,
		svc.Metadata,
		svc.UpdatedAt,
		svc.ID,
	).Error
}
