package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	// Embedded zone database so BOOKING_TIMEZONE works in minimal images.
	_ "time/tzdata"

	libconfig "evcharge/backend/libs/config"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Booking  BookingConfig  `yaml:"booking"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Port          string   `yaml:"port" env:"BOOKING_HTTP_PORT"`
	CORSOrigins   []string `yaml:"corsOrigins" env:"BOOKING_CORS_ORIGINS"`
	AuthRateLimit float64  `yaml:"authRateLimit" env:"BOOKING_AUTH_RATE_LIMIT"`
	AuthRateBurst int      `yaml:"authRateBurst" env:"BOOKING_AUTH_RATE_BURST"`
}

// DatabaseConfig configures Postgres.
type DatabaseConfig struct {
	DSN            string `yaml:"dsn" env:"BOOKING_POSTGRES_DSN"`
	MigrateOnStart bool   `yaml:"migrateOnStart" env:"BOOKING_MIGRATE_ON_START"`
}

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret           string `yaml:"secret" env:"BOOKING_JWT_SECRET"`
	ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"BOOKING_JWT_EXPIRES_MINUTES"`
}

// RedisConfig configures the optional cache and event bus. An empty Addr
// disables Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"BOOKING_REDIS_ADDR"`
	Password string `yaml:"password" env:"BOOKING_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"BOOKING_REDIS_DB"`
}

// BookingConfig holds booking policy knobs.
type BookingConfig struct {
	Timezone            string `yaml:"timezone" env:"BOOKING_TIMEZONE"`
	CatalogCacheTTLSecs int    `yaml:"catalogCacheTTL" env:"BOOKING_CATALOG_CACHE_TTL"`
}

const (
	defaultPort            = "5000"
	defaultJWTMinutes      = 24 * 60
	defaultCacheTTLSeconds = 300
	defaultAuthRateLimit   = 5
	defaultAuthRateBurst   = 10
)

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:          defaultPort,
			CORSOrigins:   []string{"*"},
			AuthRateLimit: defaultAuthRateLimit,
			AuthRateBurst: defaultAuthRateBurst,
		},
		Database: DatabaseConfig{MigrateOnStart: true},
		JWT:      JWTConfig{ExpiresInMinutes: defaultJWTMinutes},
		Booking: BookingConfig{
			Timezone:            "UTC",
			CatalogCacheTTLSecs: defaultCacheTTLSeconds,
		},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and fills in defaults for zero values.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("config: database DSN is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt secret is required")
	}
	if c.JWT.ExpiresInMinutes <= 0 {
		c.JWT.ExpiresInMinutes = defaultJWTMinutes
	}
	if c.Redis.DB < 0 {
		return errors.New("config: redis db must be non-negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return defaultJWTMinutes * time.Minute
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// CatalogCacheTTL returns how long catalog reads stay cached.
func (c *Config) CatalogCacheTTL() time.Duration {
	if c.Booking.CatalogCacheTTLSecs <= 0 {
		return defaultCacheTTLSeconds * time.Second
	}
	return time.Duration(c.Booking.CatalogCacheTTLSecs) * time.Second
}

// Location resolves the time zone that defines "today" for bookings.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Booking.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
