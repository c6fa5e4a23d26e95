package pricing

import (
	"testing"
	"time"

	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/internal/config"
	"github.com/redbarber/pos/pkg/money"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var (
	// 2025-06-03 is a Tuesday, 2025-06-04 a Wednesday, 2025-06-06 a Friday.
	tuesday   = time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)
	friday    = time.Date(2025, 6, 6, 11, 0, 0, 0, time.UTC)
)

func newResolver() *Resolver {
	return NewResolver(Params{
		Log:    zap.NewNop(),
		Tariff: config.NewStaticTariffHolder(config.DefaultTariffConfig()),
	})
}

func adultCut(base string) *catalogdomain.CatalogService {
	price := money.MustFromString(base)
	return &catalogdomain.CatalogService{
		ID:        1,
		Code:      "adult-cut",
		Name:      "Adult Cut",
		Type:      "adult-cut",
		BasePrice: &price,
		Active:    true,
	}
}

func TestResolveInvalidQuantity(t *testing.T) {
	r := newResolver()
	_, _, err := r.Resolve(adultCut("180.00"), friday, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = r.Resolve(adultCut("180.00"), friday, -3, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestResolveInactiveService(t *testing.T) {
	r := newResolver()
	svc := adultCut("180.00")
	svc.Active = false

	total, detail, err := r.Resolve(svc, friday, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, "0.00", total.String())
	assert.Equal(t, RuleInactive, detail.Rule)
}

func TestResolvePlainWeekday(t *testing.T) {
	r := newResolver()
	total, detail, err := r.Resolve(adultCut("180.00"), friday, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, "180.00", total.String())
	assert.Equal(t, RuleNone, detail.Rule)
}

func TestResolveTuesdayOverride(t *testing.T) {
	r := newResolver()
	total, detail, err := r.Resolve(adultCut("180.00"), tuesday, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, "150.00", total.String())
	assert.Equal(t, RuleTuesdayOverride, detail.Rule)
	assert.Equal(t, "150.00", detail.UnitBase.String())
}

func TestResolveTuesdayNoOverrideForOtherTypes(t *testing.T) {
	r := newResolver()
	svc := adultCut("90.00")
	svc.Type = "beard-trim"

	total, detail, err := r.Resolve(svc, tuesday, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, "90.00", total.String())
	assert.Equal(t, RuleNone, detail.Rule)
}

func TestResolveWednesdayBundle(t *testing.T) {
	r := newResolver()
	total, detail, err := r.Resolve(adultCut("180.00"), wednesday, 5, nil)
	assert.NoError(t, err)
	// pairs=2 at 270 each, remainder=1 at 180.
	assert.Equal(t, "720.00", total.String())
	assert.Equal(t, RuleWednesdayBundle, detail.Rule)
	assert.Equal(t, 2, detail.Pairs)
	assert.Equal(t, 1, detail.Remainder)
}

func TestResolveWednesdaySingleUnitIsNotBundled(t *testing.T) {
	r := newResolver()
	total, detail, err := r.Resolve(adultCut("180.00"), wednesday, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, "180.00", total.String())
	assert.Equal(t, RuleNone, detail.Rule)
}

func TestResolveWednesdayNonCutTypeIsNotBundled(t *testing.T) {
	r := newResolver()
	svc := adultCut("90.00")
	svc.Type = "beard-trim"

	total, detail, err := r.Resolve(svc, wednesday, 4, nil)
	assert.NoError(t, err)
	assert.Equal(t, "360.00", total.String())
	assert.Equal(t, RuleNone, detail.Rule)
}

func TestResolveFreeAmountRequiresManualPrice(t *testing.T) {
	r := newResolver()
	svc := &catalogdomain.CatalogService{ID: 2, Code: "custom", Name: "Custom", Type: "other", FreeAmount: true, Active: true}

	_, _, err := r.Resolve(svc, friday, 1, nil)
	assert.ErrorIs(t, err, ErrMissingManualPrice)

	manual := money.MustFromString("75.50")
	total, detail, err := r.Resolve(svc, friday, 2, &manual)
	assert.NoError(t, err)
	assert.Equal(t, "151.00", total.String())
	assert.Equal(t, RuleNone, detail.Rule)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newResolver()
	svc := adultCut("180.00")

	first, firstDetail, err := r.Resolve(svc, wednesday, 5, nil)
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		total, detail, err := r.Resolve(svc, wednesday, 5, nil)
		assert.NoError(t, err)
		assert.True(t, first.Equal(total))
		assert.Equal(t, firstDetail, detail)
	}
}
