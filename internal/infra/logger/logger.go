// Package logger provides structured logging using zerolog.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init initializes the global zerolog logger. An empty file path logs
// to stdout with console formatting; a file path switches to JSON.
func Init(verbose bool, file string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if file == "" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
		logger = zerolog.New(writer).With().Timestamp().Logger()
	} else {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	if level == zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger
	return nil
}
