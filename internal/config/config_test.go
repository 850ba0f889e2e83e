package config

import (
	"os"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location().String())
	assert.Equal(t, 90, cfg.MaxRangeDays)
	assert.Equal(t, 1000, cfg.CanChiMemoSize)
	assert.Equal(t, "Lịch Vạn Niên", cfg.ICSCalendarName)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("MAX_RANGE_DAYS", "31")
	t.Setenv("CANCHI_MEMO_SIZE", "0")
	t.Setenv("ICS_CALENDAR_NAME", "Âm lịch")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.Equal(t, 31, cfg.MaxRangeDays)
	assert.Equal(t, 0, cfg.CanChiMemoSize)
	assert.Equal(t, "Âm lịch", cfg.ICSCalendarName)
}

func TestLoad_LogSettingsIgnoreCase(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.ErrorContains(t, err, "TIMEZONE")
}

func TestLoad_IgnoresMalformedInts(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func validConfig() Config {
	return Config{
		Port:            8080,
		Env:             EnvDevelopment,
		Timezone:        DefaultTimezone,
		MaxRangeDays:    DefaultMaxRangeDays,
		CanChiMemoSize:  DefaultCanChiMemoSize,
		ICSCalendarName: DefaultICSCalendarName,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid development config", modify: func(*Config) {}},
		{name: "valid production config", modify: func(c *Config) { c.Env = EnvProduction; c.LogFormat = "json" }},
		{name: "memo disabled", modify: func(c *Config) { c.CanChiMemoSize = 0 }},
		{name: "full leap year range", modify: func(c *Config) { c.MaxRangeDays = 366 }},
		{name: "invalid port - too low", modify: func(c *Config) { c.Port = 0 }, wantErr: "PORT"},
		{name: "invalid port - too high", modify: func(c *Config) { c.Port = 70000 }, wantErr: "PORT"},
		{name: "invalid environment", modify: func(c *Config) { c.Env = "invalid" }, wantErr: "ENV"},
		{name: "empty timezone", modify: func(c *Config) { c.Timezone = "" }, wantErr: "TIMEZONE"},
		{name: "unknown timezone", modify: func(c *Config) { c.Timezone = "Asia/Nowhere" }, wantErr: "TIMEZONE"},
		{name: "range too small", modify: func(c *Config) { c.MaxRangeDays = 0 }, wantErr: "MAX_RANGE_DAYS"},
		{name: "range too large", modify: func(c *Config) { c.MaxRangeDays = 367 }, wantErr: "MAX_RANGE_DAYS"},
		{name: "negative memo", modify: func(c *Config) { c.CanChiMemoSize = -1 }, wantErr: "CANCHI_MEMO_SIZE"},
		{name: "empty calendar name", modify: func(c *Config) { c.ICSCalendarName = "" }, wantErr: "ICS_CALENDAR_NAME"},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "invalid log format", modify: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestConfig_LocationBeforeValidate(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	assert.True(t, cfg.IsDevelopment())

	cfg.Env = EnvProduction
	assert.False(t, cfg.IsDevelopment())
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	assert.True(t, cfg.IsProduction())

	cfg.Env = EnvDevelopment
	assert.False(t, cfg.IsProduction())
}

// clearEnv unsets all config-related environment variables for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT",
		"TIMEZONE", "MAX_RANGE_DAYS", "CANCHI_MEMO_SIZE", "ICS_CALENDAR_NAME",
	}
	for _, v := range vars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}
