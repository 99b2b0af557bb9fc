package logging

import (
	"log/slog"
	"os"
)

// Level re-exports slog's level type so callers configuring a logger don't
// need to import log/slog themselves.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is the structured logging capability used throughout the engine
// and its CLI driver.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// SlogLogger is a Logger backed by log/slog's JSON handler.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger returns a Logger writing structured JSON to stderr at the
// given minimum level.
func NewSlogLogger(level Level) Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			return a
		},
	}
	sl := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	return &SlogLogger{log: sl}
}

func (sl *SlogLogger) Debug(msg string, args ...any) {
	sl.log.Debug(msg, args...)
}

func (sl *SlogLogger) Info(msg string, args ...any) {
	sl.log.Info(msg, args...)
}

func (sl *SlogLogger) Warn(msg string, args ...any) {
	sl.log.Warn(msg, args...)
}

func (sl *SlogLogger) Error(msg string, args ...any) {
	sl.log.Error(msg, args...)
}

// Fatal logs at error level and terminates the process. It is used by the
// CLI driver for setup failures (bad flags, unknown job); the engine
// itself never calls Fatal directly, routing through the overridable exit
// seam in Start's options instead so the fatal path stays unit-testable.
func (sl *SlogLogger) Fatal(msg string, args ...any) {
	sl.log.Error(msg, args...)
	os.Exit(1)
}
