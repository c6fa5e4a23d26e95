package repository

import (
	"context"

	"github.com/redbarber/pos/internal/sale/domain"
	"github.com/redbarber/pos/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const saleColumns = `id, occurred_at, origin_kind, worker_id, service_id, appointment_id, promotion_id, quantity,
	base_price, discount_applied, total, commission_pct_snapshot, commission_amount, business_amount,
	pricing_rule, note, created_by, created_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sales (`+saleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.OccurredAt,
		sale.OriginKind,
		sale.WorkerID,
		sale.ServiceID,
		sale.AppointmentID,
		sale.PromotionID,
		sale.Quantity,
		sale.BasePrice,
		sale.DiscountApplied,
		sale.Total,
		sale.CommissionPctSnapshot,
		sale.CommissionAmount,
		sale.BusinessAmount,
		sale.PricingRule,
		sale.Note,
		sale.CreatedBy,
		sale.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Sale, error) {
	var sale domain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`,
		id,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Sale, error) {
	var items []domain.Sale
	stmt := db.WithContext(ctx).Model(&domain.Sale{})

	if filter.WorkerID != nil {
		stmt = stmt.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.OriginKind != "" {
		stmt = stmt.Where("origin_kind = ?", filter.OriginKind)
	}
	if filter.From != nil {
		stmt = stmt.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("occurred_at <= ?", *filter.To)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at":  true,
		"occurred_at": true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM sales WHERE id = ?`, id).Error
}
