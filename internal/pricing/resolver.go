// Package pricing resolves the sellable price of a catalog service for a
// concrete date and quantity, applying the weekday tariff rules before
// any promotion is considered.
package pricing

import (
	"errors"
	"time"

	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/internal/config"
	"github.com/redbarber/pos/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	RuleNone            = "none"
	RuleInactive        = "inactive"
	RuleTuesdayOverride = "tuesday_override"
	RuleWednesdayBundle = "wednesday_bundle"
)

var (
	ErrMissingManualPrice = errors.New("missing_manual_price")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
)

// Detail records which rule produced a resolved price, for audit trails
// and receipts.
type Detail struct {
	Rule      string      `json:"rule"`
	UnitBase  money.Money `json:"unit_base"`
	Quantity  int         `json:"quantity"`
	Pairs     int         `json:"pairs,omitempty"`
	Remainder int         `json:"remainder,omitempty"`
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Tariff *config.TariffConfigHolder
}

type Resolver struct {
	log    *zap.Logger
	tariff *config.TariffConfigHolder
}

func NewResolver(p Params) *Resolver {
	return &Resolver{
		log:    p.Log.Named("pricing.resolver"),
		tariff: p.Tariff,
	}
}

// Resolve computes the pre-discount total for quantity units of svc on
// the given date. An inactive service resolves to zero with the
// "inactive" rule and no error; the caller decides whether that is a
// failure. Free-amount services require manualPrice.
func (r *Resolver) Resolve(svc *catalogdomain.CatalogService, date time.Time, quantity int, manualPrice *money.Money) (money.Money, Detail, error) {
	if quantity <= 0 {
		return money.Zero(), Detail{}, ErrInvalidQuantity
	}

	if !svc.Active {
		return money.Zero(), Detail{Rule: RuleInactive, Quantity: quantity}, nil
	}

	tariff := r.tariff.Get()
	rule := RuleNone

	var base money.Money
	switch {
	case svc.FreeAmount:
		if manualPrice == nil {
			return money.Zero(), Detail{}, ErrMissingManualPrice
		}
		base = *manualPrice
	default:
		if svc.BasePrice != nil {
			base = *svc.BasePrice
		}
		if date.Weekday() == time.Tuesday {
			if override, ok := tariff.TuesdayPrice(svc.Type); ok {
				base = money.New(override)
				rule = RuleTuesdayOverride
			}
		}
	}

	detail := Detail{
		Rule:     rule,
		UnitBase: base,
		Quantity: quantity,
	}

	if date.Weekday() == time.Wednesday && tariff.IsCutType(svc.Type) && quantity >= 2 {
		pairs := quantity / 2
		remainder := quantity % 2
		pairPrice := base.MulRate(tariff.PairRate())
		total := pairPrice.MulInt(pairs).Add(base.MulInt(remainder))

		detail.Rule = RuleWednesdayBundle
		detail.Pairs = pairs
		detail.Remainder = remainder
		return total, detail, nil
	}

	return base.MulInt(quantity), detail, nil
}
