package debug

import (
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// NewLoggerWithLevel writes human readable, colored logs to stderr.
func NewLoggerWithLevel(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: time.Stamp,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
