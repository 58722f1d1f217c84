// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration values shared by the lookup stub server
// and the terminal client. Values are populated by Load from environment
// variables.
type Config struct {
	// Port is the TCP port the lookup stub listens on. Defaults to "8086".
	Port string

	// LookupBaseURL is where the client finds the lookup service.
	// Defaults to the local stub.
	LookupBaseURL string

	// StorePath is the SQLite file backing persisted state (recent
	// searches, currency, airport prefill). Defaults to "skytrips.db".
	StorePath string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// DefaultCurrency seeds the currency selector when nothing has been
	// persisted yet. Defaults to "USD".
	DefaultCurrency string

	// CORSOrigins is the list of allowed cross-origin request origins for
	// the lookup stub. Defaults to ["http://localhost:5173"] (Vite dev
	// server). Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error when LOG_LEVEL is not a recognized level.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8086"),
		LookupBaseURL:   getEnv("LOOKUP_BASE_URL", "http://localhost:8086"),
		StorePath:       getEnv("STORE_PATH", "skytrips.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q (want debug, info, warn, or error)", cfg.LogLevel)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
