package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogLevel = "warn"

// newLogger builds the console logger for diagnostics. Reports go to stdout,
// logs to w. --verbose forces debug, --quiet keeps errors only.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(getStringWithFallback("log-level", "log-level", defaultLogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	if getBoolWithFallback("verbose", "verbose", false) {
		level = zerolog.DebugLevel
	}
	if getBoolWithFallback("quiet", "quiet", false) {
		level = zerolog.ErrorLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !useColors(),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
