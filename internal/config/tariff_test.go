package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTariffConfig(t *testing.T) {
	cfg := DefaultTariffConfig()
	assert.NoError(t, validateTariffConfig(cfg))

	price, ok := cfg.TuesdayPrice("adult-cut")
	assert.True(t, ok)
	assert.Equal(t, "150", price.String())

	_, ok = cfg.TuesdayPrice("beard-trim")
	assert.False(t, ok)

	assert.True(t, cfg.IsCutType("child-cut"))
	assert.False(t, cfg.IsCutType("beard-trim"))
	assert.Equal(t, "1.5", cfg.PairRate().String())
}

func TestValidateTariffConfig(t *testing.T) {
	bad := TariffConfig{
		TuesdayPrices:     map[string]string{"adult-haircut": "-5"},
		WednesdayPairRate: "1.5",
	}
	assert.Error(t, validateTariffConfig(bad))

	bad = TariffConfig{WednesdayPairRate: "0"}
	assert.Error(t, validateTariffConfig(bad))

	bad = TariffConfig{WednesdayPairRate: "abc"}
	assert.Error(t, validateTariffConfig(bad))
}
