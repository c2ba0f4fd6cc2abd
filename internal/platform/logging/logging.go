// Package logging configures the zerolog logger shared by the CLI and
// the solve engine.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing structured JSON in production and
// a human-readable console in development, matching the level string
// ("debug", "info", "warn", "error").
func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
