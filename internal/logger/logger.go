package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alkime/blogsmith/internal/config"
)

// SetupLogger configures JSON logging for the server and installs it as the
// default logger.
func SetupLogger(cfg *config.Config) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)
	if cfg.Env == config.EnvDevelopment {
		level = slog.LevelDebug
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// SetupCLILogger configures text logging to w, which should not be the
// terminal the TUI draws on.
func SetupCLILogger(w io.Writer, level string) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
