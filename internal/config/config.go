// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
)

// Config holds runtime configuration for the API server.
type Config struct {
	AppEnv             string        `envconfig:"APP_ENV" default:"development"`
	AppAddr            string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"30s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	// Empty disables the report cache and document locks
	RedisAddr                    string        `envconfig:"REDIS_ADDR"`
	ReportCacheTTL               time.Duration `envconfig:"REPORT_CACHE_TTL" default:"5m"`
	ReportCacheCompressThreshold int           `envconfig:"REPORT_CACHE_COMPRESS_THRESHOLD" default:"4096"`
	DocumentLockTTL              time.Duration `envconfig:"DOCUMENT_LOCK_TTL" default:"30s"`

	// Empty disables authentication
	JWTSecret string `envconfig:"JWT_SECRET"`
	JWTIssuer string `envconfig:"JWT_ISSUER"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	ReportTimezone string `envconfig:"REPORT_TIMEZONE" default:"UTC"`
	MoneyScale     int32  `envconfig:"MONEY_SCALE" default:"2"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL must be provided")
	}
	if c.MoneyScale < 2 || c.MoneyScale > 6 {
		return fmt.Errorf("MONEY_SCALE must be between 2 and 6, got %d", c.MoneyScale)
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE %q: %w", c.ReportTimezone, err)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// IsDevelopment returns true when the application runs in development.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// ReportOptions builds the report formatting options.
func (c *Config) ReportOptions() reports.Options {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		loc = time.UTC
	}
	return reports.Options{Location: loc, MoneyScale: c.MoneyScale}
}

// AuthEnabled reports whether bearer tokens are required.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// RedisEnabled reports whether the report cache and document locks are on.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
