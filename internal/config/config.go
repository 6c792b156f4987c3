package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers
const (
	DriverSurreal = "surreal"
	DriverSQLite  = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Discord   DiscordConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Env             string        `env:"SERVER_ENV" envDefault:"development"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DiscordConfig holds application credentials
type DiscordConfig struct {
	Token         string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`
	// PublicKey is the hex-encoded Ed25519 key used to verify interactions
	PublicKey string `env:"DISCORD_PUBLIC_KEY"`
	// GuildID scopes command registration to one guild when set
	GuildID string `env:"DISCORD_GUILD_ID"`
}

// DatabaseConfig selects and configures the store
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"surreal"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"matchbot.db"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"8000"`
	Namespace  string `env:"DB_NAMESPACE" envDefault:"matchbot"`
	Database   string `env:"DB_DATABASE" envDefault:"main"`
	User       string `env:"DB_USER" envDefault:"root"`
	Password   string `env:"DB_PASSWORD" envDefault:"root"`
}

// RedisConfig holds the optional browse session backend.
// Sessions stay in memory when Addr is empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"matchbot"`
}

// SessionConfig holds browse flow settings
type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"60s"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

// LogConfig holds logger settings
type LogConfig struct {
	JSON  bool `env:"LOG_JSON" envDefault:"false"`
	Debug bool `env:"LOG_DEBUG" envDefault:"false"`
}

// RateLimitConfig holds per-user interaction limits
type RateLimitConfig struct {
	Enabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE_LIMIT_RATE" envDefault:"20"`
	Burst   int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return LoadWith(env.Options{})
}

// LoadWith reads configuration using explicit parser options
func LoadWith(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// UseRedis reports whether browse sessions live in Redis
func (c *Config) UseRedis() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// Validate checks the settings needed to serve interactions.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}

	if c.Discord.PublicKey == "" {
		errs = append(errs, errors.New("DISCORD_PUBLIC_KEY is required"))
	}
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}

	errs = append(errs, c.Database.validate()...)

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if !c.UseRedis() && c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_SWEEP_INTERVAL must be positive"))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Rate <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_RATE must be positive"))
		}
		if c.RateLimit.Burst < 0 {
			errs = append(errs, errors.New("RATE_LIMIT_BURST must not be negative"))
		}
		if c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateRegistration checks the settings needed to publish commands
func (c *Config) ValidateRegistration() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}
	if c.Discord.ApplicationID == "" {
		errs = append(errs, errors.New("DISCORD_APPLICATION_ID is required"))
	}
	return errors.Join(errs...)
}

func (d DatabaseConfig) validate() []error {
	switch d.Driver {
	case DriverSQLite:
		if strings.TrimSpace(d.SQLitePath) == "" {
			return []error{errors.New("DB_SQLITE_PATH is required for the sqlite driver")}
		}
		return nil
	case DriverSurreal:
		var missing []string
		if d.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if d.Port == "" {
			missing = append(missing, "DB_PORT")
		}
		if d.Namespace == "" {
			missing = append(missing, "DB_NAMESPACE")
		}
		if d.Database == "" {
			missing = append(missing, "DB_DATABASE")
		}
		if len(missing) > 0 {
			return []error{fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))}
		}
		return nil
	}
	return []error{fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverSurreal, DriverSQLite, d.Driver)}
}
