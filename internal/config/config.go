package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all configuration for academy-api
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Seed        SeedConfig
	Leaderboard LeaderboardConfig
	Submissions SubmissionsConfig
	Login       LoginConfig
	LogLevel    slog.Level
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// StorageConfig selects and configures the repository backend
type StorageConfig struct {
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration. An empty Address disables the cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// SeedConfig controls the starter catalog
type SeedConfig struct {
	Disabled bool
	File     string // empty uses the embedded catalog
}

// LeaderboardConfig holds leaderboard caching and rollover settings
type LeaderboardConfig struct {
	CacheTTL            time.Duration
	WeeklyResetInterval time.Duration // 0 disables the rollover worker
}

// SubmissionsConfig holds challenge submission rules
type SubmissionsConfig struct {
	RequireChallenge bool
}

// LoginConfig holds login throttling settings
type LoginConfig struct {
	RateLimit  int // requests per window per client IP; 0 disables
	RateWindow time.Duration
}

// Load loads configuration from the environment, reading a .env file first
// when one is present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds configuration from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 5000),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
			DSN:      getEnv("DATABASE_DSN", ""),
			MaxConns: getEnvAsInt("DATABASE_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DATABASE_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Seed: SeedConfig{
			Disabled: getEnvAsBool("SEED_DISABLED", false),
			File:     getEnv("SEED_FILE", ""),
		},
		Leaderboard: LeaderboardConfig{
			CacheTTL:            getEnvAsDuration("LEADERBOARD_CACHE_TTL", 30*time.Second),
			WeeklyResetInterval: getEnvAsDuration("WEEKLY_RESET_INTERVAL", 0),
		},
		Submissions: SubmissionsConfig{
			RequireChallenge: getEnvAsBool("SUBMISSIONS_REQUIRE_CHALLENGE", false),
		},
		Login: LoginConfig{
			RateLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 10),
			RateWindow: getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		},
		LogLevel: getEnvAsLogLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
		if c.Storage.MinConns > c.Storage.MaxConns {
			return fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)",
				c.Storage.MinConns, c.Storage.MaxConns)
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.Leaderboard.CacheTTL < 0 {
		return fmt.Errorf("LEADERBOARD_CACHE_TTL must not be negative")
	}
	if c.Leaderboard.WeeklyResetInterval < 0 {
		return fmt.Errorf("WEEKLY_RESET_INTERVAL must not be negative")
	}
	if c.Login.RateLimit > 0 && c.Login.RateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be positive when LOGIN_RATE_LIMIT is set")
	}

	return nil
}

// Address returns host:port for the HTTP listener
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsLogLevel(key string, defaultValue slog.Level) slog.Level {
	if value, exists := os.LookupEnv(key); exists {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
