package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a roster member who earns commission on sales. CommissionPct
// has no upper bound; rates above 100 are a business decision.
type Worker struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:text;not null"`
	Type          string          `json:"type" gorm:"type:text;not null;default:'barber'"`
	CommissionPct decimal.Decimal `json:"commission_pct" gorm:"type:decimal(7,2);not null"`
	Active        bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Worker) TableName() string { return "workers" }
