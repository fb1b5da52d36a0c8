package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8008"
	ShutdownTimeout time.Duration // ex: 5s
	DrainTimeout    time.Duration // max wait for in-flight enrichment jobs on shutdown

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DBPath string // path to the sqlite database file

	FetchTimeout time.Duration // hard timeout for metadata fetches (default: 5s)
	UserAgent    string        // identifying header sent on metadata fetches

	SeedFile string // path to a YAML list of items to seed at startup (optional, empty = disabled)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WAYGATE_LISTEN_PORT", ":8008"),
		ShutdownTimeout: mustDuration("WAYGATE_SHUTDOWN_TIMEOUT", 5*time.Second),
		DrainTimeout:    mustDuration("WAYGATE_DRAIN_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("WAYGATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WAYGATE_PRETTY_LOG", true),

		// Storage
		DBPath: getenv("WAYGATE_DB_PATH", "./data/items.db"),

		// Enrichment fetches
		FetchTimeout: mustDuration("WAYGATE_FETCH_TIMEOUT", 5*time.Second),
		UserAgent:    getenv("WAYGATE_USER_AGENT", "Mozilla/5.0 (compatible; Waygate/1.0)"),

		// Startup seeding
		SeedFile: getenv("WAYGATE_SEED_FILE", ""), // Optional, empty = seeding disabled
	}

	// Log config only in debug mode
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", *cfg)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
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
