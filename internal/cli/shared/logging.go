package shared

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger on w when debug is set and a disabled
// logger otherwise.
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).
		With().Timestamp().
		Logger()
}
