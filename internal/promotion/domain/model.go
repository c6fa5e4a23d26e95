package domain

import (
	"time"

	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	KindPercentage = "percentage"
	KindFixed      = "fixed"
)

// Promotion targets exactly one service. FinalPrice, when set, overrides
// the kind/value formula. A promotion with no weekday flag set exists
// but never matches.
type Promotion struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	ServiceID  int64           `json:"service_id" gorm:"not null;index:ix_promotions_service"`
	Kind       string          `json:"kind" gorm:"type:text;not null"`
	Value      decimal.Decimal `json:"value" gorm:"type:decimal(10,2);not null"`
	FinalPrice *money.Money    `json:"final_price,omitempty" gorm:"type:decimal(10,2)"`

	StartDate *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	EndDate   *time.Time `json:"end_date,omitempty" gorm:"type:date"`

	Monday    bool `json:"monday" gorm:"not null;default:false"`
	Tuesday   bool `json:"tuesday" gorm:"not null;default:false"`
	Wednesday bool `json:"wednesday" gorm:"not null;default:false"`
	Thursday  bool `json:"thursday" gorm:"not null;default:false"`
	Friday    bool `json:"friday" gorm:"not null;default:false"`
	Saturday  bool `json:"saturday" gorm:"not null;default:false"`
	Sunday    bool `json:"sunday" gorm:"not null;default:false"`

	StartTime *string `json:"start_time,omitempty" gorm:"type:text"`
	EndTime   *string `json:"end_time,omitempty" gorm:"type:text"`

	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Promotion) TableName() string { return "promotions" }

// AppliesOnWeekday reports whether the flag for the given weekday is set.
func (p Promotion) AppliesOnWeekday(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return p.Monday
	case time.Tuesday:
		return p.Tuesday
	case time.Wednesday:
		return p.Wednesday
	case time.Thursday:
		return p.Thursday
	case time.Friday:
		return p.Friday
	case time.Saturday:
		return p.Saturday
	case time.Sunday:
		return p.Sunday
	default:
		return false
	}
}

// InDateRange checks the optional [start, end] validity range against the
// calendar date of ts. A nil bound is open.
func (p Promotion) InDateRange(ts time.Time) bool {
	date := ts.Truncate(24 * time.Hour)
	if p.StartDate != nil && date.Before(p.StartDate.Truncate(24*time.Hour)) {
		return false
	}
	if p.EndDate != nil && date.After(p.EndDate.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// InTimeWindow checks the optional [StartTime, EndTime] window against
// the clock time of ts. A promotion without a window is always
// time-eligible.
func (p Promotion) InTimeWindow(ts time.Time) bool {
	if p.StartTime == nil && p.EndTime == nil {
		return true
	}
	minutes := ts.Hour()*60 + ts.Minute()
	if p.StartTime != nil {
		start, ok := parseClock(*p.StartTime)
		if !ok || minutes < start {
			return false
		}
	}
	if p.EndTime != nil {
		end, ok := parseClock(*p.EndTime)
		if !ok || minutes > end {
			return false
		}
	}
	return true
}

func parseClock(value string) (int, bool) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
