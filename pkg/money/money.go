// Package money provides the single monetary value type used by every
// pricing, discount and commission computation. All arithmetic results
// are quantized to two decimal places, rounding halves up, so invariants
// such as commission + business == total hold uniformly across the
// engine without per-call-site rounding.
package money

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Money is a two-decimal monetary amount. The zero value is 0.00.
type Money struct {
	decimal.Decimal
}

// Zero returns 0.00.
func Zero() Money {
	return Money{decimal.Zero}
}

// New quantizes d to two decimal places, rounding halves up.
func New(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// FromString parses a decimal string such as "180.00".
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return New(d), nil
}

// MustFromString parses value or panics. Intended for constants and tests.
func MustFromString(value string) Money {
	m, err := FromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

// FromFloat converts a float amount, quantized to two decimals.
func FromFloat(value float64) Money {
	return New(decimal.NewFromFloat(value))
}

// FromInt converts a whole currency amount.
func FromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

func (m Money) Add(o Money) Money {
	return New(m.Decimal.Add(o.Decimal))
}

func (m Money) Sub(o Money) Money {
	return New(m.Decimal.Sub(o.Decimal))
}

// MulInt multiplies by a unit count.
func (m Money) MulInt(n int) Money {
	return New(m.Decimal.Mul(decimal.NewFromInt(int64(n))))
}

// MulRate multiplies by an arbitrary decimal rate (e.g. a bundle
// multiplier) and quantizes the result.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return New(m.Decimal.Mul(rate))
}

// Percent returns m * pct / 100, quantized.
func (m Money) Percent(pct decimal.Decimal) Money {
	return New(m.Decimal.Mul(pct).Div(decimal.NewFromInt(100)))
}

// Clamp bounds m into [lo, hi].
func (m Money) Clamp(lo, hi Money) Money {
	if m.Decimal.Cmp(lo.Decimal) < 0 {
		return lo
	}
	if m.Decimal.Cmp(hi.Decimal) > 0 {
		return hi
	}
	return m
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Cmp(o.Decimal) == 0
}

func (m Money) LessThan(o Money) bool {
	return m.Decimal.Cmp(o.Decimal) < 0
}

func (m Money) GreaterThan(o Money) bool {
	return m.Decimal.Cmp(o.Decimal) > 0
}

func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// String renders with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Value stores the amount as its two-decimal string form so numeric
// columns round-trip without float drift.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// MarshalJSON renders the amount as a JSON string, e.g. "180.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = New(d)
	return nil
}
