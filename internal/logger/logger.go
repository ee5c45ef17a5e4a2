package logger

import (
	"log/slog"
	"os"
)

// Load builds the process logger. Development runs log at debug level.
func Load(env string) *slog.Logger {
	opts := &slog.HandlerOptions{}
	if env != "production" {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
