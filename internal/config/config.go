// Package config reads process settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gym-ledger/internal/cycle"
	"gym-ledger/internal/database"
	"gym-ledger/pkg/logger"

	"github.com/joho/godotenv"
)

// Storage backends for the persisted state.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

var ErrMissing = errors.New("required setting missing")

type Config struct {
	BotToken       string
	DefaultAdminID int64
	APIEndpoint    string

	Log      logger.Config
	DB       database.Config
	Storage  string
	StateDir string

	SettlementDir string
	MetricsAddr   string
	Cycle         cycle.Config
}

// Load reads the environment. When requireBot is false the bot settings are
// optional, which is what the report command wants.
func Load(requireBot bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		APIEndpoint: getEnv("BOT_API_ENDPOINT", ""),
		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "gym"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage:       getEnv("STORAGE", StorageFile),
		StateDir:      getEnv("STATE_DIR", "data/state"),
		SettlementDir: getEnv("SETTLEMENT_DIR", "data/settlements"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
		Cycle: cycle.Config{
			Schedule: getEnv("SETTLEMENT_SCHEDULE", cycle.DefaultSchedule),
		},
	}

	if requireBot {
		if cfg.BotToken == "" {
			return nil, fmt.Errorf("%w: BOT_TOKEN", ErrMissing)
		}
		raw := os.Getenv("DEFAULT_ADMIN_ID")
		if raw == "" {
			return nil, fmt.Errorf("%w: DEFAULT_ADMIN_ID", ErrMissing)
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEFAULT_ADMIN_ID: %w", err)
		}
		cfg.DefaultAdminID = id
	}

	switch cfg.Storage {
	case StorageFile, StoragePostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE %q: want %s or %s", cfg.Storage, StorageFile, StoragePostgres)
	}

	if tz := os.Getenv("SETTLEMENT_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid SETTLEMENT_TZ: %w", err)
		}
		cfg.Cycle.Location = loc
	}

	var err error
	if cfg.Cycle.RetryAttempts, err = getUint("SETTLEMENT_RETRY_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.Cycle.RetryDelay, err = getDuration("SETTLEMENT_RETRY_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.Cycle.RetryMaxDelay, err = getDuration("SETTLEMENT_RETRY_MAX_DELAY", time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getUint(key string, def uint) (uint, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint(n), nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
