package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger for the service. Components derive their
// own scoped loggers from it via With().
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Str("service", "storefront").Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()
}
