// Package log wraps log/slog with a component attribute so log lines can be
// traced back to the subsystem that emitted them.
package log

import (
	"log/slog"
	"os"
)

// Standard component names used across the application.
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentService = "service"
	ComponentReport  = "report"
)

// Logger wraps slog.Logger with a fixed component attribute.
type Logger struct {
	*slog.Logger
}

// New creates a text-handler logger at the given level tagged with component.
func New(level slog.Level, component string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler).With("component", component)}
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
