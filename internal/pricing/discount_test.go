package pricing

import (
	"testing"

	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyDiscountNoPromo(t *testing.T) {
	base := money.MustFromString("200.00")
	final, discount := ApplyDiscount(base, nil)
	assert.Equal(t, "200.00", final.String())
	assert.Equal(t, "0.00", discount.String())
}

func TestApplyDiscountPercentage(t *testing.T) {
	base := money.MustFromString("200.00")
	promo := &promodomain.Promotion{Kind: promodomain.KindPercentage, Value: decimal.NewFromInt(10)}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "20.00", discount.String())
	assert.Equal(t, "180.00", final.String())
}

func TestApplyDiscountFixed(t *testing.T) {
	base := money.MustFromString("200.00")
	promo := &promodomain.Promotion{Kind: promodomain.KindFixed, Value: decimal.NewFromInt(30)}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "30.00", discount.String())
	assert.Equal(t, "170.00", final.String())
}

func TestApplyDiscountFixedLargerThanBase(t *testing.T) {
	base := money.MustFromString("50.00")
	promo := &promodomain.Promotion{Kind: promodomain.KindFixed, Value: decimal.NewFromInt(80)}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "50.00", discount.String())
	assert.Equal(t, "0.00", final.String())
	assert.False(t, final.IsNegative())
}

func TestApplyDiscountPrecomputedFinal(t *testing.T) {
	base := money.MustFromString("200.00")
	finalPrice := money.MustFromString("150.00")
	promo := &promodomain.Promotion{
		Kind:       promodomain.KindPercentage,
		Value:      decimal.NewFromInt(99),
		FinalPrice: &finalPrice,
	}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "150.00", final.String())
	assert.Equal(t, "50.00", discount.String())
}

func TestApplyDiscountPrecomputedFinalAboveBaseIsCapped(t *testing.T) {
	base := money.MustFromString("200.00")
	finalPrice := money.MustFromString("250.00")
	promo := &promodomain.Promotion{Kind: promodomain.KindFixed, FinalPrice: &finalPrice}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "200.00", final.String())
	assert.Equal(t, "0.00", discount.String())
}

func TestApplyDiscountUnknownKindIsIgnored(t *testing.T) {
	base := money.MustFromString("100.00")
	promo := &promodomain.Promotion{Kind: "bogus", Value: decimal.NewFromInt(10)}

	final, discount := ApplyDiscount(base, promo)
	assert.Equal(t, "100.00", final.String())
	assert.Equal(t, "0.00", discount.String())
}
