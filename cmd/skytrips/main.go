// Package main is the entry point for the terminal search client. It wires
// the persisted store, the lookup client, and the TUI together; no business
// logic belongs here.
package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/skytrips/search-core/internal/config"
	"github.com/skytrips/search-core/internal/lookup"
	"github.com/skytrips/search-core/internal/storage"
	"github.com/skytrips/search-core/internal/tui"
)

// lookupCacheTTL keeps repeated queries within a session off the network.
const lookupCacheTTL = 5 * time.Minute

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// The TUI owns stdout, so structured logs go to a file next to the
	// store.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logFile, err := os.OpenFile("skytrips.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	store, err := storage.OpenSQLite(cfg.StorePath)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// --- Lookup client ----------------------------------------------------
	client := lookup.NewCachedClient(lookup.NewHTTPClient(cfg.LookupBaseURL, nil), lookupCacheTTL)

	// --- TUI --------------------------------------------------------------
	model := tui.New(tui.Options{
		Lookup:          client,
		Store:           storage.NewService(store, logger),
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          logger,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		slog.Error("terminal ui error", "error", err)
		os.Exit(1)
	}
}
