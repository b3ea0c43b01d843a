package app

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.CatalogTTL)
	assert.Equal(t, 60, cfg.CatalogMaxResults)
	assert.Equal(t, "WEB-", cfg.FolioPrefix)
	assert.Equal(t, currency.MXN, cfg.CurrencyUnit())
	assert.Equal(t, "America/Mexico_City", cfg.Location().String())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CATALOG_TTL", "5s")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("POS_CURRENCY", "USD")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.CatalogTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, currency.USD, cfg.CurrencyUnit())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "zero ttl", key: "CATALOG_TTL", val: "0s", want: "config is not valid"},
		{name: "unknown log format", key: "LOG_FORMAT", val: "xml", want: "config is not valid"},
		{name: "unknown currency", key: "POS_CURRENCY", val: "ZZZ", want: "currency[ZZZ] is not valid"},
		{name: "unknown timezone", key: "POS_TIMEZONE", val: "Mars/Olympus", want: "timezone[Mars/Olympus] is not valid"},
		{name: "bad duration", key: "CATALOG_TTL", val: "soon", want: "envconfig.Process"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := NewLogger(&Config{LogFormat: format, LogLevel: "debug"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	_, err := NewLogger(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}
