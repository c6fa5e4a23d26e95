package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// TariffConfig carries the weekday price rules that are operator-tunable
// without a redeploy: the Tuesday flat prices per service type, the
// service types treated as haircuts for bundle pricing, and the
// Wednesday pair multiplier.
type TariffConfig struct {
	TuesdayPrices     map[string]string `mapstructure:"tuesdayPrices"`
	CutTypes          []string          `mapstructure:"cutTypes"`
	WednesdayPairRate string            `mapstructure:"wednesdayPairRate"`
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		TuesdayPrices: map[string]string{
			"adult-cut": "150.00",
			"child-cut": "130.00",
		},
		CutTypes:          []string{"adult-cut", "child-cut"},
		WednesdayPairRate: "1.5",
	}
}

// TuesdayPrice returns the flat Tuesday price for a service type, if one
// is configured.
func (c TariffConfig) TuesdayPrice(serviceType string) (decimal.Decimal, bool) {
	raw, ok := c.TuesdayPrices[serviceType]
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// IsCutType reports whether a service type participates in the
// Wednesday bundle rule.
func (c TariffConfig) IsCutType(serviceType string) bool {
	for _, t := range c.CutTypes {
		if t == serviceType {
			return true
		}
	}
	return false
}

func (c TariffConfig) PairRate() decimal.Decimal {
	d, err := decimal.NewFromString(c.WednesdayPairRate)
	if err != nil {
		return decimal.RequireFromString("1.5")
	}
	return d
}

type TariffConfigHolder struct {
	current atomic.Value // holds TariffConfig
}

func NewTariffConfigHolder() (*TariffConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("tariff")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/redbarber/config") // Volume-mounted config
	v.AddConfigPath("/etc/redbarber")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("REDBARBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultTariffConfig()
		v.SetDefault("tariff.tuesdayPrices", defaults.TuesdayPrices)
		v.SetDefault("tariff.cutTypes", defaults.CutTypes)
		v.SetDefault("tariff.wednesdayPairRate", defaults.WednesdayPairRate)
	}

	var cfg TariffConfig
	if err := v.UnmarshalKey("tariff", &cfg); err != nil {
		return nil, err
	}
	if err := validateTariffConfig(cfg); err != nil {
		return nil, err
	}

	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TariffConfig
		if err := v.UnmarshalKey("tariff", &updated); err != nil {
			log.Printf("[tariff-config] reload failed: %v", err)
			return
		}
		if err := validateTariffConfig(updated); err != nil {
			log.Printf("[tariff-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tariff-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *TariffConfigHolder) Get() TariffConfig {
	return h.current.Load().(TariffConfig)
}

// NewStaticTariffHolder wraps a fixed config, bypassing file watching.
// Intended for tests.
func NewStaticTariffHolder(cfg TariffConfig) *TariffConfigHolder {
	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateTariffConfig(cfg TariffConfig) error {
	for code, raw := range cfg.TuesdayPrices {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return errors.New("tariff.tuesdayPrices." + code + " is not a decimal")
		}
		if d.IsNegative() {
			return errors.New("tariff.tuesdayPrices." + code + " cannot be negative")
		}
	}
	rate, err := decimal.NewFromString(cfg.WednesdayPairRate)
	if err != nil || !rate.IsPositive() {
		return errors.New("tariff.wednesdayPairRate must be a positive decimal")
	}
	return nil
}
