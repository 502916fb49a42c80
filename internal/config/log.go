package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// SetLogLevel sets up the default logger from LOG_LEVEL and LOG_FORMAT.
func SetLogLevel() {
	logger, err := newLogger()
	if err != nil {
		slog.Error("Invalid log configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
}

func newLogger() (*slog.Logger, error) {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToUpper(envLevel) {
		case "DEBUG":
			level = slog.LevelDebug
		case "INFO":
			level = slog.LevelInfo
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		default:
			return nil, fmt.Errorf("invalid log level %q", envLevel)
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	switch format := os.Getenv("LOG_FORMAT"); strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
