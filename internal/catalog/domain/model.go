package domain

import (
	"time"

	"github.com/redbarber/pos/pkg/money"
	"gorm.io/datatypes"
)

// CatalogService is a sellable barbershop service. BasePrice is null when
// FreeAmount is set, in which case the price is entered at the counter.
type CatalogService struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	Code       string            `json:"code" gorm:"type:text;not null;uniqueIndex:ux_services_code"`
	Name       string            `json:"name" gorm:"type:text;not null"`
	Type       string            `json:"type" gorm:"type:text;not null"`
	BasePrice  *money.Money      `json:"base_price,omitempty" gorm:"type:decimal(10,2)"`
	FreeAmount bool              `json:"free_amount" gorm:"not null;default:false"`
	Active     bool              `json:"active" gorm:"not null;default:true"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CatalogService) TableName() string { return "services" }
