package domain

import (
	"time"

	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	OriginAppointment = "from_appointment"
	OriginWalkIn      = "walk_in"
)

// Sale is a recorded transaction. Every monetary column and the
// commission rate are snapshots frozen at creation; nothing here is ever
// recomputed when catalog prices, promotions or worker rates change
// later. Deletion is the only supported mutation.
type Sale struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	OccurredAt    time.Time `json:"occurred_at" gorm:"not null;index:ix_sales_occurred"`
	OriginKind    string    `json:"origin_kind" gorm:"type:text;not null"`
	WorkerID      int64     `json:"worker_id" gorm:"not null;index:ix_sales_worker"`
	ServiceID     *int64    `json:"service_id,omitempty"`
	AppointmentID *int64    `json:"appointment_id,omitempty"`
	PromotionID   *int64    `json:"promotion_id,omitempty"`
	Quantity      int       `json:"quantity" gorm:"not null;default:1"`

	BasePrice             money.Money     `json:"base_price" gorm:"type:decimal(10,2);not null"`
	DiscountApplied       money.Money     `json:"discount_applied" gorm:"type:decimal(10,2);not null"`
	Total                 money.Money     `json:"total" gorm:"type:decimal(10,2);not null"`
	CommissionPctSnapshot decimal.Decimal `json:"commission_pct_snapshot" gorm:"type:decimal(7,2);not null"`
	CommissionAmount      money.Money     `json:"commission_amount" gorm:"type:decimal(10,2);not null"`
	BusinessAmount        money.Money     `json:"business_amount" gorm:"type:decimal(10,2);not null"`

	PricingRule string    `json:"pricing_rule" gorm:"type:text;not null;default:'none'"`
	Note        *string   `json:"note,omitempty" gorm:"type:text"`
	CreatedBy   *string   `json:"created_by,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Sale) TableName() string { return "sales" }
