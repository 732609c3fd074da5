// Package log configures the process-wide zerolog logger. Services log
// through the zerolog/log globals; Setup decides level and output format once
// at startup.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Setup configures the global logger. An unknown level falls back to info.
func Setup(level string, pretty bool) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	zlog.Logger = logger.Level(parsed).With().Timestamp().Logger()

	if err != nil {
		zlog.Warn().Str("configured_log_level", level).Msg("invalid LOG_LEVEL, defaulting to info")
	}
}
