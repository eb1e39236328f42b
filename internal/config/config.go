// Package config holds the storefront settings: defaults, an optional YAML
// file and environment overrides, applied in that order. Environment names
// join the prefix, the section and the key, e.g. STOREFRONT_POSTGRES_URL or
// STOREFRONT_REDIS_IDEMPOTENCY_TTL.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Log      Log      `yaml:"log"`
	Shop     Shop     `yaml:"shop"`
}

type HTTP struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" split_words:"true"`
}

type Postgres struct {
	URL string `yaml:"url"`
}

// Redis backs order idempotency keys. An empty Addr disables them.
type Redis struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	IdempotencyTTL time.Duration `yaml:"idempotencyTTL" split_words:"true"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Shop struct {
	Currency    string  `yaml:"currency"`
	TaxRate     float64 `yaml:"taxRate" split_words:"true"`
	ShippingFee float64 `yaml:"shippingFee" split_words:"true"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: Redis{
			IdempotencyTTL: 24 * time.Hour,
		},
		Log: Log{
			Level: "info",
		},
		Shop: Shop{
			Currency:    "INR",
			TaxRate:     0.18,
			ShippingFee: 50,
		},
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is empty"))
	}
	if c.Postgres.URL == "" {
		errs = append(errs, errors.New("postgres.url is empty"))
	}
	if c.Redis.Addr != "" && c.Redis.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("redis.idempotencyTTL must be positive"))
	}
	if _, err := domain.ParseCurrency(c.Shop.Currency); err != nil {
		errs = append(errs, fmt.Errorf("shop.currency: %w", err))
	}
	if c.Shop.TaxRate < 0 {
		errs = append(errs, errors.New("shop.taxRate is negative"))
	}
	if c.Shop.ShippingFee < 0 {
		errs = append(errs, errors.New("shop.shippingFee is negative"))
	}

	return errors.Join(errs...)
}

// Pricing is only meaningful for a validated config.
func (c Config) Pricing() domain.Pricing {
	unit, _ := domain.ParseCurrency(c.Shop.Currency)

	return domain.Pricing{
		TaxRate:     decimal.NewFromFloat(c.Shop.TaxRate),
		ShippingFee: decimal.NewFromFloat(c.Shop.ShippingFee),
		Currency:    unit,
	}
}
