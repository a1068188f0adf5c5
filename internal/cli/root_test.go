package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subtrack/internal/config"
	"subtrack/internal/core"
	"subtrack/internal/services"
	"subtrack/internal/storage"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int64
		wantErr bool
	}{
		{name: "valid id", arg: "42", want: 42},
		{name: "one", arg: "1", want: 1},
		{name: "zero", arg: "0", wantErr: true},
		{name: "negative", arg: "-3", wantErr: true},
		{name: "not a number", arg: "abc", wantErr: true},
		{name: "empty", arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseID(%q) expected error, got %d", tt.arg, got)
				}
				if !errors.Is(err, core.ErrInvalidInput) {
					t.Errorf("parseID(%q) error = %v, want ErrInvalidInput", tt.arg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseID(%q) unexpected error: %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestDueColumn(t *testing.T) {
	today := core.NewDate(2024, time.January, 15)
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "overdue", date: "2024-01-10", want: "overdue by 5 days"},
		{name: "due today", date: "2024-01-15", want: "due today"},
		{name: "tomorrow", date: "2024-01-16", want: "in 1 day"},
		{name: "later", date: "2024-02-15", want: "in 31 days"},
		{name: "malformed date", date: "02/15/2024", want: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dueColumn(core.Subscription{RenewalDate: tt.date}, today)
			if got != tt.want {
				t.Errorf("dueColumn(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "subtrack.db"))
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}
	service := services.NewSubscriptionService(repo)
	t.Cleanup(func() { service.Close() })

	return &App{
		Config: &config.Config{
			DBPath:            filepath.Join(dir, "subtrack.db"),
			ReportsDir:        filepath.Join(dir, "reports"),
			RenewalWindowDays: 30,
			TrendMonths:       12,
			CurrencySymbol:    "$",
		},
		Presets: config.DefaultPresets(),
		Service: service,
	}
}

func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestAddAndListCommands(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app,
		"add",
		"--name", "Netflix",
		"--category", "Streaming",
		"--cost", "$15.99",
		"--renewal", "2024-02-15",
		"--payment", "Credit Card",
	)
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `Added subscription "Netflix"`) {
		t.Errorf("add output missing confirmation: %q", out)
	}

	out, err = runCommand(t, app, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"Netflix", "Streaming", "$15.99", "2024-02-15", "Total subscriptions: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app,
		"add",
		"--name", "X",
		"--category", "Streaming",
		"--cost", "15.99",
		"--renewal", "2024-02-15",
		"--payment", "Credit Card",
	)
	if err == nil {
		t.Fatalf("expected validation error, got output:\n%s", out)
	}
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}

	listOut, err := runCommand(t, app, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(listOut, "No subscriptions found.") {
		t.Errorf("rejected add must not persist anything:\n%s", listOut)
	}
}

func TestRemoveCommand(t *testing.T) {
	app := newTestApp(t)

	if _, err := runCommand(t, app,
		"add", "--name", "Spotify Premium", "--category", "Music",
		"--cost", "9.99", "--renewal", "2024-01-20", "--payment", "PayPal",
	); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err := runCommand(t, app, "remove", "1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !strings.Contains(out, `Deleted subscription "Spotify Premium" (id 1)`) {
		t.Errorf("remove output = %q", out)
	}

	_, err = runCommand(t, app, "get", "1")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get after remove: error = %v, want ErrNotFound", err)
	}
}

func TestCostsCommand(t *testing.T) {
	app := newTestApp(t)

	if _, err := runCommand(t, app, "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	out, err := runCommand(t, app, "costs")
	if err != nil {
		t.Fatalf("costs failed: %v", err)
	}
	for _, want := range []string{"Subscriptions: 6", "Monthly total: $112.95", "Annual total:  $1355.40", "Software"} {
		if !strings.Contains(out, want) {
			t.Errorf("costs output missing %q:\n%s", want, out)
		}
	}
}
