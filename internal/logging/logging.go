// Package logging builds the process logger for the command-line tools.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w. The default level is warn so a
// sweep only reports trouble; verbose raises it to info and debug to debug.
func New(w io.Writer, debug, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel

	if verbose {
		level = zerolog.InfoLevel
	}

	if debug {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
