package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/scheduler")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/scheduler", cfg.GetDBDSN())
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 4, cfg.SlotWeeksAhead)
	assert.Equal(t, 24*time.Hour, cfg.SlotGenerationInterval)
	assert.Equal(t, uint64(5), cfg.TxMaxRetries)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://db/scheduler")
	t.Setenv("ENV", "production")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("SLOT_WEEKS_AHEAD", "6")
	t.Setenv("SLOT_GENERATION_INTERVAL", "12h")
	t.Setenv("TX_MAX_RETRIES", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 6, cfg.SlotWeeksAhead)
	assert.Equal(t, 12*time.Hour, cfg.SlotGenerationInterval)
	assert.Equal(t, uint64(3), cfg.TxMaxRetries)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestValidate(t *testing.T) {
	valid := Config{
		DBDSN:                  "postgres://db/scheduler",
		SlotWeeksAhead:         4,
		SlotGenerationInterval: time.Hour,
		RateLimitPerMinute:     30,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"weeks", func(c *Config) { c.SlotWeeksAhead = 0 }, "SLOT_WEEKS_AHEAD"},
		{"interval", func(c *Config) { c.SlotGenerationInterval = 0 }, "SLOT_GENERATION_INTERVAL"},
		{"rate limit", func(c *Config) { c.RateLimitPerMinute = -1 }, "RATE_LIMIT_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
