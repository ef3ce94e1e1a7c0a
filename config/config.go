// Package config loads application configuration from environment
// variables (APEX_* keys), with .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// HTTP server
	HTTP HTTPConfig

	// Focus engine
	Focus FocusConfig

	// Feature flags
	Features *FeatureFlags
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// Timezone in which "today" is computed for the dashboard.
	Timezone string
	Location *time.Location

	// Graceful shutdown timeout.
	ShutdownTimeout time.Duration
}

// IsProduction reports whether the app runs in production.
func (c AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string

	// Connection pool settings
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	EnableCORS     bool
	AllowedOrigins []string

	RateLimitPerMinute int
	SecureCookies      bool
}

// FocusConfig holds settings for the focus engine and accounts.
type FocusConfig struct {
	// SessionTTL is how long an auth session lives without activity.
	SessionTTL time.Duration

	// AdminEmails grants admin rights to these accounts in addition to
	// the stored role, so an operator can bootstrap the first admin.
	AdminEmails []string

	// LeaderboardWarmInterval is how often the background job re-warms
	// the leaderboard cache. Zero disables the job.
	LeaderboardWarmInterval time.Duration
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (c FocusConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if strings.ToLower(strings.TrimSpace(admin)) == email {
			return true
		}
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// LOADING
// ══════════════════════════════════════════════════════════════════════════════

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnvString("APEX_APP_NAME", "apex-campus-hub"),
			Environment:     Environment(getEnvString("APEX_ENV", string(EnvDevelopment))),
			Debug:           getEnvBool("APEX_DEBUG", false),
			Version:         getEnvString("APEX_VERSION", "dev"),
			Timezone:        getEnvString("APEX_TIMEZONE", "UTC"),
			ShutdownTimeout: getEnvDuration("APEX_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnvString("APEX_DB_HOST", "localhost"),
			Port:            getEnvInt("APEX_DB_PORT", 5432),
			Database:        getEnvString("APEX_DB_NAME", "apex"),
			User:            getEnvString("APEX_DB_USER", "postgres"),
			Password:        getEnvString("APEX_DB_PASSWORD", ""),
			SSLMode:         getEnvString("APEX_DB_SSLMODE", "disable"),
			MaxConns:        int32(getEnvInt("APEX_DB_MAX_CONNS", 10)),
			MinConns:        int32(getEnvInt("APEX_DB_MIN_CONNS", 2)),
			MaxConnLifetime: getEnvDuration("APEX_DB_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvDuration("APEX_DB_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnvString("APEX_REDIS_HOST", "localhost"),
			Port:         getEnvInt("APEX_REDIS_PORT", 6379),
			Password:     getEnvString("APEX_REDIS_PASSWORD", ""),
			DB:           getEnvInt("APEX_REDIS_DB", 0),
			PoolSize:     getEnvInt("APEX_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("APEX_REDIS_MIN_IDLE", 2),
		},
		HTTP: HTTPConfig{
			Host:               getEnvString("APEX_HTTP_HOST", "0.0.0.0"),
			Port:               getEnvInt("APEX_HTTP_PORT", 8080),
			ReadTimeout:        getEnvDuration("APEX_HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:       getEnvDuration("APEX_HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:        getEnvDuration("APEX_HTTP_IDLE_TIMEOUT", 60*time.Second),
			EnableCORS:         getEnvBool("APEX_HTTP_CORS", true),
			AllowedOrigins:     getEnvStringSlice("APEX_HTTP_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitPerMinute: getEnvInt("APEX_HTTP_RATE_LIMIT", 100),
			SecureCookies:      getEnvBool("APEX_HTTP_SECURE_COOKIES", false),
		},
		Focus: FocusConfig{
			SessionTTL:              getEnvDuration("APEX_SESSION_TTL", 24*time.Hour),
			AdminEmails:             getEnvStringSlice("APEX_ADMIN_EMAILS", nil),
			LeaderboardWarmInterval: getEnvDuration("APEX_LEADERBOARD_WARM_INTERVAL", 0),
		},
		Features: LoadFeatureFlags(),
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APEX_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}
	cfg.App.Location = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration consistency.
func (c *Config) validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("invalid APEX_ENV: %q", c.App.Environment)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("APEX_DB_HOST is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid APEX_DB_PORT: %d", c.Database.Port)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid APEX_HTTP_PORT: %d", c.HTTP.Port)
	}
	if c.Focus.SessionTTL <= 0 {
		return fmt.Errorf("APEX_SESSION_TTL must be positive")
	}

	if c.App.IsProduction() {
		if c.Database.Password == "" {
			return fmt.Errorf("APEX_DB_PASSWORD is required in production")
		}
		if !c.HTTP.SecureCookies {
			return fmt.Errorf("APEX_HTTP_SECURE_COOKIES must be enabled in production")
		}
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ENV HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes" || value == "on"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
