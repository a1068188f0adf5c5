package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid defaults",
			config: Config{
				DBPath:            "./test.db",
				ReportsDir:        "./reports",
				RenewalWindowDays: 30,
				TrendMonths:       12,
				CurrencySymbol:    "$",
			},
			wantErr: false,
		},
		{
			name: "empty db path",
			config: Config{
				ReportsDir:        "./reports",
				RenewalWindowDays: 30,
				TrendMonths:       12,
				CurrencySymbol:    "$",
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "renewal window too small",
			config: Config{
				DBPath:            "./test.db",
				ReportsDir:        "./reports",
				RenewalWindowDays: 0,
				TrendMonths:       12,
				CurrencySymbol:    "$",
			},
			wantErr:     true,
			errorString: "invalid renewal window 0",
		},
		{
			name: "renewal window too large",
			config: Config{
				DBPath:            "./test.db",
				ReportsDir:        "./reports",
				RenewalWindowDays: 4000,
				TrendMonths:       12,
				CurrencySymbol:    "$",
			},
			wantErr:     true,
			errorString: "invalid renewal window 4000",
		},
		{
			name: "trend months out of range",
			config: Config{
				DBPath:            "./test.db",
				ReportsDir:        "./reports",
				RenewalWindowDays: 30,
				TrendMonths:       500,
				CurrencySymbol:    "$",
			},
			wantErr:     true,
			errorString: "invalid trend months 500",
		},
		{
			name: "missing presets file",
			config: Config{
				DBPath:            "./test.db",
				ReportsDir:        "./reports",
				RenewalWindowDays: 30,
				TrendMonths:       12,
				CurrencySymbol:    "$",
				PresetsFile:       "/nonexistent/presets.yaml",
			},
			wantErr:     true,
			errorString: "presets file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDoesNotCreateDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		DBPath:            filepath.Join(dir, "test.db"),
		ReportsDir:        "./reports",
		RenewalWindowDays: 30,
		TrendMonths:       12,
		CurrencySymbol:    "$",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("Validate must not create the database directory")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SUBTRACK_DB_PATH", "/tmp/custom.db")
	t.Setenv("SUBTRACK_RENEWAL_WINDOW_DAYS", "14")
	t.Setenv("SUBTRACK_CURRENCY_SYMBOL", "€")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("expected env db path, got %s", cfg.DBPath)
	}
	if cfg.RenewalWindowDays != 14 {
		t.Fatalf("expected window 14, got %d", cfg.RenewalWindowDays)
	}
	if cfg.CurrencySymbol != "€" {
		t.Fatalf("expected €, got %s", cfg.CurrencySymbol)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SUBTRACK_DB_PATH", "SUBTRACK_REPORTS_DIR", "SUBTRACK_RENEWAL_WINDOW_DAYS",
		"SUBTRACK_TREND_MONTHS", "SUBTRACK_CURRENCY_SYMBOL", "SUBTRACK_PRESETS_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBPath != "./data/subscriptions.db" || cfg.RenewalWindowDays != 30 ||
		cfg.TrendMonths != 12 || cfg.CurrencySymbol != "$" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPresets(t *testing.T) {
	p, err := LoadPresets("")
	if err != nil {
		t.Fatalf("empty path should yield defaults: %v", err)
	}
	if len(p.Categories) == 0 || len(p.PaymentMethods) == 0 {
		t.Fatalf("defaults must not be empty")
	}

	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := "categories:\n  - Streaming\n  - Podcasts\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	p, err = LoadPresets(path)
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	if len(p.Categories) != 2 || p.Categories[1] != "Podcasts" {
		t.Fatalf("expected file categories, got %v", p.Categories)
	}
	// Missing field falls back to defaults.
	if len(p.PaymentMethods) == 0 {
		t.Fatalf("expected default payment methods")
	}

	if _, err := LoadPresets(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
