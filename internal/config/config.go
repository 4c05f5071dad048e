// Package config reads the host settings from the environment, optionally
// seeded from dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StoragePostgres StorageBackend = "postgres"
	StorageRedis    StorageBackend = "redis"
)

type Config struct {
	Storage     StorageBackend `env:"MORPHO_STORAGE" envDefault:"memory"`
	CartKey     string         `env:"MORPHO_CART_KEY" envDefault:"morpho-cart"`
	PostgresDSN string         `env:"MORPHO_POSTGRES_DSN"`
	RedisAddr   string         `env:"MORPHO_REDIS_ADDR" envDefault:"localhost:6379"`

	MaxToasts     int           `env:"MORPHO_MAX_TOASTS" envDefault:"5"`
	ToastDuration time.Duration `env:"MORPHO_TOAST_DURATION" envDefault:"4s"`

	Locale       string `env:"MORPHO_LOCALE" envDefault:"fa"`
	NativeDigits bool   `env:"MORPHO_NATIVE_DIGITS" envDefault:"true"`
	Currency     string `env:"MORPHO_CURRENCY" envDefault:"IRR"`

	LogLevel string `env:"MORPHO_LOG_LEVEL" envDefault:"info"`
}

// Load applies the given dotenv files, skipping missing ones, then parses
// and validates the environment. Variables already set win over files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("godotenv.Load[%s]: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("MORPHO_POSTGRES_DSN is required for postgres storage")
		}
	default:
		return fmt.Errorf("storage[%s] is not supported", c.Storage)
	}

	if c.CartKey == "" {
		return fmt.Errorf("cart key is empty")
	}
	if c.MaxToasts < 1 {
		return fmt.Errorf("max toasts[%d] must be at least 1", c.MaxToasts)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("toast duration[%s] must be positive", c.ToastDuration)
	}

	if _, err := c.Language(); err != nil {
		return err
	}
	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale[%s] is not valid: %w", c.Locale, err)
	}
	return tag, nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	return unit, nil
}

func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log level[%s] is not valid: %w", c.LogLevel, err)
	}
	return level, nil
}
