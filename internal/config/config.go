// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// PingMessage is the body returned by GET /api/ping, overridable for
	// deployment smoke checks.
	PingMessage string

	// CORSOrigins is the list of origins allowed to make cross-origin
	// requests, parsed from a comma-separated env var.
	CORSOrigins []string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Security holds rate limiting, CSRF, and break-glass settings.
	Security SecurityConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "codedrill").
	User string

	// Password is the MariaDB password (default: "codedrill").
	Password string

	// Name is the database name (default: "codedrill").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns bounds concurrent outstanding connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxIdleTime is how long an idle connection is kept before eviction.
	ConnMaxIdleTime time.Duration

	// ConnectTimeout is the per-connection dial timeout.
	ConnectTimeout time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Timeout = d.ConnectTimeout
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// SecurityConfig holds rate limiting, CSRF, and break-glass settings.
type SecurityConfig struct {
	// GlobalRateLimit is the per-IP request cap within GlobalRateWindow.
	GlobalRateLimit int

	// GlobalRateWindow is the fixed window for the global limiter.
	GlobalRateWindow time.Duration

	// CSRFTokenTTL is how long an issued CSRF token stays valid.
	CSRFTokenTTL time.Duration

	// BreakGlassEnabled activates the emergency operator credential check
	// used when the data store is unreachable during login. Disabled by
	// default; both credential fields must also be set.
	BreakGlassEnabled bool

	// BreakGlassUser is the fixed operator username.
	BreakGlassUser string

	// BreakGlassPassword is the fixed operator password.
	BreakGlassPassword string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first if
// present (ignored when absent). Returns an error if required production
// settings are missing.
func Load() (*Config, error) {
	// Best-effort: local development keeps secrets in .env, production
	// injects real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnvInt("PORT", 8080),
		PingMessage: getEnv("PING_MESSAGE", "pong"),
		CORSOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "codedrill"),
			Password:        getEnv("DB_PASSWORD", "codedrill"),
			Name:            getEnv("DB_NAME", "codedrill"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Second),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Security: SecurityConfig{
			GlobalRateLimit:    getEnvInt("GLOBAL_RATE_LIMIT", 1000),
			GlobalRateWindow:   getEnvDuration("GLOBAL_RATE_WINDOW", time.Minute),
			CSRFTokenTTL:       getEnvDuration("CSRF_TOKEN_TTL", time.Hour),
			BreakGlassEnabled:  getEnvBool("BREAK_GLASS_ENABLED", false),
			BreakGlassUser:     getEnv("BREAK_GLASS_USER", ""),
			BreakGlassPassword: getEnv("BREAK_GLASS_PASSWORD", ""),
		},
	}

	// Validate production settings. Case-insensitive check catches common
	// variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if cfg.Database.Password == "codedrill" && cfg.Database.dsnOverride == "" {
			return nil, fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if cfg.Security.BreakGlassEnabled && cfg.Security.BreakGlassPassword == "" {
			return nil, fmt.Errorf("BREAK_GLASS_PASSWORD is required when BREAK_GLASS_ENABLED is set")
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// splitAndTrim parses a comma-separated list, dropping empty elements.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true", "1", ...) or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "5m") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
