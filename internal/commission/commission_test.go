package commission

import (
	"testing"

	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeBasicSplit(t *testing.T) {
	total := money.MustFromString("100.00")

	commission, business := Compute(total, decimal.NewFromInt(40))
	assert.Equal(t, "40.00", commission.String())
	assert.Equal(t, "60.00", business.String())
}

func TestComputeZeroPct(t *testing.T) {
	total := money.MustFromString("123.45")

	commission, business := Compute(total, decimal.Zero)
	assert.Equal(t, "0.00", commission.String())
	assert.Equal(t, "123.45", business.String())
}

func TestComputeRoundsHalfUp(t *testing.T) {
	total := money.MustFromString("100.00")

	commission, business := Compute(total, decimal.RequireFromString("33.33"))
	assert.Equal(t, "33.33", commission.String())
	assert.Equal(t, "66.67", business.String())
}

// Sweeps every rate from 0.00 to 100.00 in 0.01 steps and checks that
// commission plus business share reconstructs the total exactly.
func TestComputeSumInvariantSweep(t *testing.T) {
	total := money.MustFromString("100.00")
	step := decimal.RequireFromString("0.01")

	pct := decimal.Zero
	for i := 0; i <= 10000; i++ {
		commission, business := Compute(total, pct)
		sum := commission.Add(business)
		if !sum.Equal(total) {
			t.Fatalf("rounding leak at pct=%s: %s + %s = %s",
				pct, commission, business, sum)
		}
		assert.False(t, commission.IsNegative())
		assert.False(t, business.GreaterThan(total))
		pct = pct.Add(step)
	}
}
