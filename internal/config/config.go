package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Database
	DBPath string

	// Reports
	ReportsDir        string
	RenewalWindowDays int
	TrendMonths       int
	CurrencySymbol    string

	// Optional YAML presets file (category / payment method suggestions)
	PresetsFile string
}

func Load() *Config {
	return &Config{
		DBPath:            getEnv("SUBTRACK_DB_PATH", "./data/subscriptions.db"),
		ReportsDir:        getEnv("SUBTRACK_REPORTS_DIR", "./reports"),
		RenewalWindowDays: getEnvInt("SUBTRACK_RENEWAL_WINDOW_DAYS", 30),
		TrendMonths:       getEnvInt("SUBTRACK_TREND_MONTHS", 12),
		CurrencySymbol:    getEnv("SUBTRACK_CURRENCY_SYMBOL", "$"),
		PresetsFile:       getEnv("SUBTRACK_PRESETS_FILE", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if c.ReportsDir == "" {
		errs = append(errs, "reports directory cannot be empty")
	}

	if c.RenewalWindowDays < 1 {
		errs = append(errs, fmt.Sprintf("invalid renewal window %d: must be at least 1 day", c.RenewalWindowDays))
	} else if c.RenewalWindowDays > 3650 {
		errs = append(errs, fmt.Sprintf("invalid renewal window %d: must be at most 3650 days", c.RenewalWindowDays))
	}

	if c.TrendMonths < 1 {
		errs = append(errs, fmt.Sprintf("invalid trend months %d: must be at least 1", c.TrendMonths))
	} else if c.TrendMonths > 120 {
		errs = append(errs, fmt.Sprintf("invalid trend months %d: must be at most 120", c.TrendMonths))
	}

	if c.CurrencySymbol == "" {
		errs = append(errs, "currency symbol cannot be empty")
	}

	if c.PresetsFile != "" {
		if _, err := os.Stat(c.PresetsFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("presets file does not exist: %s", c.PresetsFile))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
