package pricing

import (
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	"github.com/redbarber/pos/pkg/money"
)

// ApplyDiscount applies an already-matched promotion to a base total.
// The discount is clamped to [0, base]; the final price can never go
// negative nor exceed the base.
func ApplyDiscount(base money.Money, promo *promodomain.Promotion) (final money.Money, discount money.Money) {
	if promo == nil {
		return base, money.Zero()
	}

	if promo.FinalPrice != nil {
		clamped := promo.FinalPrice.Clamp(money.Zero(), base)
		return clamped, base.Sub(clamped)
	}

	switch promo.Kind {
	case promodomain.KindPercentage:
		discount = base.Percent(promo.Value)
	case promodomain.KindFixed:
		discount = money.New(promo.Value)
	default:
		return base, money.Zero()
	}

	discount = discount.Clamp(money.Zero(), base)
	return base.Sub(discount), discount
}
