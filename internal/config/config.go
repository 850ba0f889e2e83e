// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Almanac
	Timezone        string // IANA zone that defines "today"
	MaxRangeDays    int    // longest span for range and ICS requests
	CanChiMemoSize  int    // day Can-Chi memo capacity, 0 disables it
	ICSCalendarName string // X-WR-CALNAME of exported feeds

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	location *time.Location
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Almanac defaults.
const (
	DefaultTimezone        = "Asia/Ho_Chi_Minh"
	DefaultMaxRangeDays    = 90
	DefaultCanChiMemoSize  = 1000
	DefaultICSCalendarName = "Lịch Vạn Niên"

	// MaxRangeDaysLimit caps MAX_RANGE_DAYS at a leap year.
	MaxRangeDaysLimit = 366
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Almanac
	cfg.Timezone = getEnv("TIMEZONE", DefaultTimezone)
	cfg.MaxRangeDays = getEnvInt("MAX_RANGE_DAYS", DefaultMaxRangeDays)
	cfg.CanChiMemoSize = getEnvInt("CANCHI_MEMO_SIZE", DefaultCanChiMemoSize)
	cfg.ICSCalendarName = getEnv("ICS_CALENDAR_NAME", DefaultICSCalendarName)

	// Logging
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
// A valid Timezone is resolved and cached for Location.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.Timezone == "" {
		errs = append(errs, errors.New("TIMEZONE is required"))
	} else if loc, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known time zone: %w", c.Timezone, err))
	} else {
		c.location = loc
	}

	if c.MaxRangeDays < 1 || c.MaxRangeDays > MaxRangeDaysLimit {
		errs = append(errs, fmt.Errorf("MAX_RANGE_DAYS must be between 1 and %d, got %d", MaxRangeDaysLimit, c.MaxRangeDays))
	}

	if c.CanChiMemoSize < 0 {
		errs = append(errs, fmt.Errorf("CANCHI_MEMO_SIZE must not be negative, got %d", c.CanChiMemoSize))
	}

	if c.ICSCalendarName == "" {
		errs = append(errs, errors.New("ICS_CALENDAR_NAME is required"))
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	// Validate log format
	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location returns the configured time zone, or UTC before a successful
// Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
