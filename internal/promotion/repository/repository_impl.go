package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/redbarber/pos/internal/promotion/domain"
	"github.com/redbarber/pos/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const promotionColumns = `id, service_id, kind, value, final_price,
	start_date, end_date,
	monday, tuesday, wednesday, thursday, friday, saturday, sunday,
	start_time, end_time, active, created_at, updated_at`

func (r *repo) Create(ctx context.Context, db *gorm.DB, promo *domain.Promotion) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO promotions (`+promotionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		promo.ID,
		promo.ServiceID,
		promo.Kind,
		promo.Value,
		promo.FinalPrice,
		promo.StartDate,
		promo.EndDate,
		promo.Monday,
		promo.Tuesday,
		promo.Wednesday,
		promo.Thursday,
		promo.Friday,
		promo.Saturday,
		promo.Sunday,
		promo.StartTime,
		promo.EndTime,
		promo.Active,
		promo.CreatedAt,
		promo.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Promotion, error) {
	var promo domain.Promotion
	err := db.WithContext(ctx).Raw(
		`SELECT `+promotionColumns+` FROM promotions WHERE id = ?`,
		id,
	).Scan(&promo).Error
	if err != nil {
		return nil, err
	}
	if promo.ID == 0 {
		return nil, nil
	}
	return &promo, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Promotion, error) {
	var items []domain.Promotion
	stmt := db.WithContext(ctx).Model(&domain.Promotion{})

	if serviceID := strings.TrimSpace(filter.ServiceID); serviceID != "" {
		parsed, err := snowflake.ParseString(serviceID)
		if err != nil {
			return nil, domain.ErrInvalidService
		}
		stmt = stmt.Where("service_id = ?", parsed.Int64())
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCandidates(ctx context.Context, db *gorm.DB, serviceID int64) ([]domain.Promotion, error) {
	var items []domain.Promotion
	err := db.WithContext(ctx).Raw(
		`SELECT `+promotionColumns+`
		 FROM promotions
		 WHERE service_id = ? AND active = ?
		 ORDER BY created_at DESC`,
		serviceID,
		true,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, promo *domain.Promotion) error {
	if promo == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE promotions
		 SET value = ?, final_price = ?, start_date = ?, end_date = ?,
		     monday = ?, tuesday = ?, wednesday = ?, thursday = ?, friday = ?, saturday = ?, sunday = ?,
		     start_time = ?, end_time = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		promo.Value,
		promo.FinalPrice,
		promo.StartDate,
		promo.EndDate,
		promo.Monday,
		promo.Tuesday,
		promo.Wednesday,
		promo.Thursday,
		promo.Friday,
		promo.Saturday,
		promo.Sunday,
		promo.StartTime,
		promo.EndTime,
		promo.Active,
		promo.UpdatedAt,
		promo.ID,
	).Error
}
