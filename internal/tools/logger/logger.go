package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the service root logger. Unknown or empty levels fall back to
// info rather than failing startup.
func New(level string) *zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stdout).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "checkout-hub").
		Logger()

	return &log
}
