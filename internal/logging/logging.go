package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global logger. Logs go to stderr so generated output on
// stdout stays clean.
func Init(level zerolog.Level) {
	InitWriter(os.Stderr, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level zerolog.Level) {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}

	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	if level == zerolog.DebugLevel {
		log.Debug().Msg("Log level set to DEBUG")
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
