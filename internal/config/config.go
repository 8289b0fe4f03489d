// Package config loads server configuration from the environment, with a
// .env file honored in development.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogMode            string
	CORSOrigin         string
	TotalQuestions     int
	SessionIdleTimeout time.Duration
	JanitorInterval    time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("LITMUS_ADDR", ":8080"),
		DBPath:             envOr("LITMUS_DB_PATH", "litmus.db"),
		LogMode:            envOr("LITMUS_LOG_MODE", "production"),
		CORSOrigin:         envOr("LITMUS_CORS_ORIGIN", "*"),
		TotalQuestions:     envIntOr("LITMUS_TOTAL_QUESTIONS", 6),
		SessionIdleTimeout: envDurationOr("LITMUS_SESSION_IDLE_TIMEOUT", 30*time.Minute),
		JanitorInterval:    envDurationOr("LITMUS_JANITOR_INTERVAL", 5*time.Minute),
	}
}

// Validate reports configuration values the server cannot start with.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "LITMUS_ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "LITMUS_DB_PATH cannot be empty")
	}
	if c.TotalQuestions < 2 {
		problems = append(problems, "LITMUS_TOTAL_QUESTIONS must be at least 2")
	}
	if c.SessionIdleTimeout <= 0 {
		problems = append(problems, "LITMUS_SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.JanitorInterval <= 0 {
		problems = append(problems, "LITMUS_JANITOR_INTERVAL must be positive")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
