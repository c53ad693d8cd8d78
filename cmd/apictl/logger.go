package main

import (
	"io"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger; verbose lowers the level to debug so
// the client's wire dumps are shown.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
