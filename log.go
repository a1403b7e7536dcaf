package main

import (
	"log/slog"
	"os"
)

func configureLogging(level slog.Level) {
	handler := slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{
			Level: level,
		},
	)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func logger() *slog.Logger {
	return slog.Default()
}
