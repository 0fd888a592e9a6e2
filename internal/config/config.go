// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects all runtime configuration in one place. Values are
// read from the environment once at startup and passed explicitly into
// constructors.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string

	// Store selects the game record backend: "memory", "postgres" or "redis".
	Store string

	// PostgresURL is the pgx connection string when Store is "postgres".
	PostgresURL string

	// RedisAddr and RedisDB configure the Redis client when Store is
	// "redis" or when the Redis creation guard is enabled.
	RedisAddr string
	RedisDB   int

	// MaxGames caps game creation: total live records under the
	// store-count guard, creations per UTC day under the Redis guard.
	MaxGames int

	// Retention is how long finished or abandoned games are kept before
	// the housekeeping sweep deletes them.
	Retention time.Duration

	// SweepInterval is how often the housekeeping sweep runs.
	SweepInterval time.Duration
}

// Load reads the environment into a Config, applying defaults for
// anything unset.
func Load() Config {
	cfg := Config{
		Addr:          ":8080",
		Store:         getEnv("RUNO_STORE", "memory"),
		PostgresURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		MaxGames:      getEnvInt("RUNO_MAX_GAMES", 1000),
		Retention:     getEnvDuration("RUNO_RETENTION", 24*time.Hour),
		SweepInterval: getEnvDuration("RUNO_SWEEP_INTERVAL", time.Hour),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration is a helper to parse an environment variable as a
// time.Duration, else a default value.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
