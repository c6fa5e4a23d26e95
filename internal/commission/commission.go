// Package commission splits a sale total into the worker commission and
// the business share.
package commission

import (
	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
)

// Compute returns the worker commission for a total at pct percent. The
// business share is derived by subtraction so the two always sum back to
// the total regardless of rounding.
func Compute(total money.Money, pct decimal.Decimal) (commission money.Money, business money.Money) {
	commission = total.Percent(pct)
	business = total.Sub(commission)
	return commission, business
}
