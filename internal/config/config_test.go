package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/panasonic")
	t.Setenv("APP_ENV", "development")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 15*time.Second, cfg.AppReadTimeout)
	assert.Equal(t, int32(2), cfg.MoneyScale)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.RedisEnabled())

	opts := cfg.ReportOptions()
	assert.Equal(t, time.UTC, opts.Location)
	assert.Equal(t, int32(2), opts.MoneyScale)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/panasonic")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REPORT_TIMEZONE", "Asia/Tashkent")
	t.Setenv("MONEY_SCALE", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "Asia/Tashkent", cfg.ReportOptions().Location.String())
	assert.Equal(t, int32(4), cfg.ReportOptions().MoneyScale)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DatabaseURL:    "postgres://localhost/panasonic",
			ReportTimezone: "UTC",
			MoneyScale:     2,
			DBMaxConns:     10,
			DBMinConns:     1,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = " " }, errMsg: "DATABASE_URL"},
		{name: "negative scale", mutate: func(c *Config) { c.MoneyScale = -1 }, errMsg: "MONEY_SCALE"},
		{name: "scale below cents", mutate: func(c *Config) { c.MoneyScale = 1 }, errMsg: "MONEY_SCALE"},
		{name: "scale too large", mutate: func(c *Config) { c.MoneyScale = 7 }, errMsg: "MONEY_SCALE"},
		{name: "unknown timezone", mutate: func(c *Config) { c.ReportTimezone = "Mars/Olympus" }, errMsg: "REPORT_TIMEZONE"},
		{name: "pool bounds", mutate: func(c *Config) { c.DBMinConns = 20 }, errMsg: "DB_MIN_CONNS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
