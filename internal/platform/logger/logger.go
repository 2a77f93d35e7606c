package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output keeps log aggregation simple;
// the level can be raised via LOG_LEVEL=debug.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
