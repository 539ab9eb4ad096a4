package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Upstream betting API
	BetAPIURL string

	// HTTP server
	HTTPHost string
	HTTPPort string

	// Bet amount bounds accepted by the placement flow
	MinBetAmount int64
	MaxBetAmount int64

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BetAPIURL:   os.Getenv("BET_API_URL"),

		HTTPHost: getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort: getEnv("HTTP_PORT", "3000"),

		// Defaults match the accepted upstream bet range
		MinBetAmount: 1,
		MaxBetAmount: 5,

		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if min := os.Getenv("MIN_BET_AMOUNT"); min != "" {
		if parsed, err := strconv.ParseInt(min, 10, 64); err == nil {
			config.MinBetAmount = parsed
		}
	}
	if max := os.Getenv("MAX_BET_AMOUNT"); max != "" {
		if parsed, err := strconv.ParseInt(max, 10, 64); err == nil {
			config.MaxBetAmount = parsed
		}
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.BetAPIURL == "" {
			return nil, fmt.Errorf("BET_API_URL is required")
		}
	}

	return config, nil
}

// getEnv returns the value of the environment variable or the default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
