package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/scanrate-backend/internal/config"
)

// NewLogger builds the process logger for cmd and sets it as the slog
// default. JSON output is meant for production, text (with source locations)
// for development. Output goes to stderr so the rater CLI can keep stdout for
// command results.
func NewLogger(cfg config.LogConfig, cmd string) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg)).With(slog.String("cmd", cmd))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
