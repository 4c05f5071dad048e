package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/nikolayk812/morpho-cart/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, "morpho-cart", cfg.CartKey)
	assert.Equal(t, 5, cfg.MaxToasts)
	assert.Equal(t, 4*time.Second, cfg.ToastDuration)
	assert.True(t, cfg.NativeDigits)

	tag, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.Persian, tag)

	unit, err := cfg.CurrencyUnit()
	require.NoError(t, err)
	assert.Equal(t, currency.MustParseISO("IRR"), unit)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestLoad_Env(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError string
		check     func(t *testing.T, cfg config.Config)
	}{
		{
			name: "redis with overrides: ok",
			env: map[string]string{
				"MORPHO_STORAGE":        "redis",
				"MORPHO_REDIS_ADDR":     "cache:6379",
				"MORPHO_MAX_TOASTS":     "3",
				"MORPHO_TOAST_DURATION": "2500ms",
				"MORPHO_NATIVE_DIGITS":  "false",
			},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, config.StorageRedis, cfg.Storage)
				assert.Equal(t, "cache:6379", cfg.RedisAddr)
				assert.Equal(t, 3, cfg.MaxToasts)
				assert.Equal(t, 2500*time.Millisecond, cfg.ToastDuration)
				assert.False(t, cfg.NativeDigits)
			},
		},
		{
			name:      "postgres without dsn: error",
			env:       map[string]string{"MORPHO_STORAGE": "postgres"},
			wantError: "MORPHO_POSTGRES_DSN is required for postgres storage",
		},
		{
			name:      "unknown storage: error",
			env:       map[string]string{"MORPHO_STORAGE": "sqlite"},
			wantError: "storage[sqlite] is not supported",
		},
		{
			name:      "zero toasts: error",
			env:       map[string]string{"MORPHO_MAX_TOASTS": "0"},
			wantError: "max toasts[0] must be at least 1",
		},
		{
			name:      "bad currency: error",
			env:       map[string]string{"MORPHO_CURRENCY": "TOMAN"},
			wantError: "currency[TOMAN] is not valid",
		},
		{
			name:      "bad log level: error",
			env:       map[string]string{"MORPHO_LOG_LEVEL": "loud"},
			wantError: "log level[loud] is not valid",
		},
		{
			name:      "unparsable duration: error",
			env:       map[string]string{"MORPHO_TOAST_DURATION": "soon"},
			wantError: "env.Parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MORPHO_CART_KEY=kiosk-2\nMORPHO_LOCALE=en\n"), 0o600))

	t.Setenv("MORPHO_LOCALE", "de")
	t.Cleanup(func() {
		_ = os.Unsetenv("MORPHO_CART_KEY")
	})

	cfg, err := config.Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "kiosk-2", cfg.CartKey)
	assert.Equal(t, "de", cfg.Locale, "environment wins over dotenv")
}
