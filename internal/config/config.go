package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":3000"
	Env             string        // "development" | "production"
	ShutdownTimeout time.Duration // ex: 10s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DatabaseDSN string

	SessionSecret string
	SessionMaxAge int // seconds

	CORSOrigins []string // empty = reflect any origin (dev)
}

// Load reads configuration from the environment, falling back to local
// development defaults. godotenv runs before this in main, so a .env
// file is enough for local runs.
func Load() *Config {
	return &Config{
		ListenAddr:      getenv("JOBTRACKER_ADDR", ":3000"),
		Env:             getenv("JOBTRACKER_ENV", "development"),
		ShutdownTimeout: mustDuration("JOBTRACKER_SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("JOBTRACKER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("JOBTRACKER_PRETTY_LOG", true),

		DatabaseDSN: getenv("JOBTRACKER_DATABASE_DSN",
			"host=localhost user=postgres password=postgres dbname=jobtracker port=5432 sslmode=disable"),

		SessionSecret: getenv("JOBTRACKER_SESSION_SECRET", "dev_secret_change_me"),
		SessionMaxAge: getenvInt("JOBTRACKER_SESSION_MAX_AGE", 7*24*60*60),

		CORSOrigins: splitAndTrim(getenv("JOBTRACKER_CORS_ORIGINS", "")),
	}
}

func (c *Config) Production() bool { return c.Env == "production" }

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
