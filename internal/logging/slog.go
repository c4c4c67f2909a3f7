// Package logging configures the simulator's slog-based logging: a console
// handler plus an optional session log file, fanned out through MultiHandler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Manager owns the configured logger for a simulator session.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates an unconfigured manager; Logger falls back to
// slog.Default until Setup is called.
func NewManager() *Manager {
	return &Manager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes logging to stderr and, when file is non-nil, a session
// log file. Timestamps are RFC3339 UTC.
func (m *Manager) Setup(file io.Writer, level string) {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, handlerOpts)}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	m.logger.Debug("logging initialized", "level", level)
}

// Logger returns the configured logger.
func (m *Manager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}
