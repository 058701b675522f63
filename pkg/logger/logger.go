// Package logger provides a structured, levelled logger built on log/slog.
//
// Output goes to stderr so it never mixes with the tables the CLI prints on
// stdout. In production (APP_ENV=production) records are JSON, otherwise
// human-readable text:
//
//	logger.Info("sale recorded", "product_id", 1, "quantity", 2)
//	// → time=... level=INFO msg="sale recorded" product_id=1 quantity=2
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/stockroom/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stderr, config.AppEnv(), config.LogLevel()))
	slog.SetDefault(L)
}

func newHandler(w io.Writer, env, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, opts) // structured JSON for log aggregators
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// ParseLevel maps a config string to a slog.Level. Unknown values mean warn.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Use replaces the base logger. Handy for tests and for fanning out to extra
// sinks (see AttachMongo).
func Use(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// With returns the base logger tagged with args.
func With(args ...any) *slog.Logger { return L.With(args...) }

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
