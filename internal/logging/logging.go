// Package logging builds the zerolog logger shared by commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/config"
)

// ParseLevel maps a config level to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New configures a logger writing to cfg.File, or to fallback when no file
// is set. The returned close function releases the file.
func New(cfg config.LoggingConfig, fallback io.Writer) (zerolog.Logger, func() error, error) {
	out := fallback
	closeFn := func() error { return nil }
	color := true

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
		color = false
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	return logger, closeFn, nil
}

// ForUI returns a logger that never writes to the terminal. Without a log
// file it discards everything.
func ForUI(cfg config.LoggingConfig) (zerolog.Logger, func() error, error) {
	if cfg.File == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	return New(cfg, io.Discard)
}
