// Package logger installs the process-wide slog handler.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/talgya/hexgalaxy/internal/config"
)

// Init sets the default logger from cfg, writing to stderr.
func Init(cfg config.LoggingConfig) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, cfg, isatty.IsTerminal(os.Stderr.Fd()))))

	slog.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"format", cfg.Format,
	)
}

func newHandler(w io.Writer, cfg config.LoggingConfig, terminal bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	json := cfg.Format == "json" || (cfg.Format == "auto" && !terminal)
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
