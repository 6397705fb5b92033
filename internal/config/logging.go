package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the process logger from LoggingConfig. An unknown
// level name falls back to info instead of failing startup.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := io.Writer(os.Stdout)
	if strings.EqualFold(cfg.Format, "console") {
		// Human-readable output for local development only; production
		// stays on JSON lines.
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	// Anything that logs through zerolog's package-level helper shares
	// the same sink.
	log.Logger = logger
	return logger
}
