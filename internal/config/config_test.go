package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBaseConfig() *Config {
	cfg, err := LoadWith(env.Options{Environment: map[string]string{
		"DISCORD_TOKEN":      "token",
		"DISCORD_PUBLIC_KEY": "abcd",
	}})
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWith(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSurreal, cfg.Database.Driver)
	assert.Equal(t, 60*time.Second, cfg.Session.TTL)
	assert.Equal(t, 20, cfg.RateLimit.Rate)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.UseRedis())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWith(env.Options{Environment: map[string]string{
		"DB_DRIVER":      " SQLite ",
		"DB_SQLITE_PATH": "/data/bot.db",
		"REDIS_ADDR":     "localhost:6379",
		"SESSION_TTL":    "2m",
		"LOG_JSON":       "true",
	}})
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/data/bot.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Parallel()

	_, err := LoadWith(env.Options{Environment: map[string]string{"SESSION_TTL": "soon"}})
	assert.Error(t, err)
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()

	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"invalid env", func(c *Config) { c.Server.Env = "invalid" }, "SERVER_ENV"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "SERVER_PORT"},
		{"missing public key", func(c *Config) { c.Discord.PublicKey = "" }, "DISCORD_PUBLIC_KEY"},
		{"missing token", func(c *Config) { c.Discord.Token = "" }, "DISCORD_TOKEN"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, "DB_DRIVER"},
		{"sqlite without path", func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.SQLitePath = " "
		}, "DB_SQLITE_PATH"},
		{"surreal without host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
		{"zero rate", func(c *Config) { c.RateLimit.Rate = 0 }, "RATE_LIMIT_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error mentioning %s", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %s, got: %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Validate_RateLimitDisabledSkipsChecks(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Rate = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Discord.Token = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestConfig_ValidateRegistration(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	err := cfg.ValidateRegistration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_APPLICATION_ID")

	cfg.Discord.ApplicationID = "123"
	assert.NoError(t, cfg.ValidateRegistration())
}
