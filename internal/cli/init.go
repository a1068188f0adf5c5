// Package cli implements the command tree and the shared initialization
// helpers behind cmd/subtrack.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"subtrack/internal/config"
	applog "subtrack/internal/log"
	"subtrack/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger() *applog.Logger {
	logger := applog.New(slog.LevelInfo, applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the SQLite repository, exiting the process on failure.
func InitStore(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
