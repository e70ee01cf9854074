// Package config provides configuration loading and validation for the job board server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds runtime configuration for the API server.
type AppConfig struct {
	DatabaseURL string
	RedisAddr   string // optional; application volume limiting is skipped when empty

	// ApplicationDailyLimit caps how many applications a job seeker may
	// submit per rolling 24h window.
	ApplicationDailyLimit int
}

// NewAppConfig creates the server configuration from environment variables:
// DATABASE_URL, REDIS_ADDR and APPLICATION_DAILY_LIMIT (default 50). All may
// be empty; the caller decides whether a database URL is required after
// applying its own overrides.
func NewAppConfig() (*AppConfig, error) {
	limitStr := os.Getenv("APPLICATION_DAILY_LIMIT")
	if limitStr == "" {
		limitStr = "50" // default
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid APPLICATION_DAILY_LIMIT: %v", err)
	}

	config := &AppConfig{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		ApplicationDailyLimit: limit,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.ApplicationDailyLimit < 1 {
		return fmt.Errorf("APPLICATION_DAILY_LIMIT must be at least 1, got: %d", c.ApplicationDailyLimit)
	}
	return nil
}
