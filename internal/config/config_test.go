package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skytrips/search-core/internal/config"
)

// TestLoad_defaults verifies that all env vars fall back to their defaults
// when unset.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOOKUP_BASE_URL", "")
	t.Setenv("STORE_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEFAULT_CURRENCY", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8086", cfg.Port)
	require.Equal(t, "http://localhost:8086", cfg.LookupBaseURL)
	require.Equal(t, "skytrips.db", cfg.StorePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "USD", cfg.DefaultCurrency)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOOKUP_BASE_URL", "https://lookup.example.com")
	t.Setenv("STORE_PATH", "/var/lib/skytrips/state.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_CURRENCY", "AUD")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "https://lookup.example.com", cfg.LookupBaseURL)
	require.Equal(t, "/var/lib/skytrips/state.db", cfg.StorePath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "AUD", cfg.DefaultCurrency)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

// TestLoad_invalidLogLevel verifies that an unrecognized LOG_LEVEL is
// rejected and the error names the offending value.
func TestLoad_invalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "verbose")
}
