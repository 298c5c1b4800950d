package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Development gets pretty
// console output, everything else JSON.
func Setup(level, env string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).Level(lvl).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	}

	log.Logger = logger
}
