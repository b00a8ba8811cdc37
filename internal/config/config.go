package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Broadcast channels
	AdminGroupID  int64
	NotifyGroupID int64

	// AI draft generator (optional)
	GeminiAPIKey string

	// Bot settings
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// .env is optional; real deployments use plain env vars
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		RedisDB:       0,
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Hour,
		LogLevel:      "info",
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if group := os.Getenv("ADMIN_GROUP_ID"); group != "" {
		id, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_GROUP_ID: %w", err)
		}
		cfg.AdminGroupID = id
	}

	if group := os.Getenv("NOTIFY_GROUP_ID"); group != "" {
		id, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_GROUP_ID: %w", err)
		}
		cfg.NotifyGroupID = id
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if interval := os.Getenv("SWEEP_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
		}
		cfg.SweepInterval = d
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session TTL too small: %v", c.SessionTTL)
	}

	if c.SweepInterval < time.Minute {
		return fmt.Errorf("sweep interval too small: %v", c.SweepInterval)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
