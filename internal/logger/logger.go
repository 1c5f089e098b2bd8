package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a new logger with the given format and level
func New(format, level string) (zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, format, level)
}

// NewWithWriter is New writing to w instead of stdout.
func NewWithWriter(w io.Writer, format, level string) (zerolog.Logger, error) {
	switch strings.ToLower(format) {
	case "json":
	case "text":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %q", format)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
