// Package logging builds the zerolog logger shared by all components.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/rcliao/coach-engine/internal/config"
)

// New returns a logger writing to stderr in the configured format. An
// unparseable level falls back to warn.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "coach-engine").
		Logger()
}
