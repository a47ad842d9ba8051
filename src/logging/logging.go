// Package logging sets up the structured loggers used by appshell
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the level picked from the command line
const EnvLogLevel = "APPSHELL_LOG_LEVEL"

// New returns a logger writing to out. Terminals get the human readable console format, everything else gets JSON lines.
func New(out io.Writer, verbose bool) zerolog.Logger {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return NewConsole(f, verbose)
	}
	return zerolog.New(out).Level(level(verbose)).With().Timestamp().Logger()
}

// NewConsole always uses the console format, for outputs that are read by people but aren't terminals (the browser console)
func NewConsole(out io.Writer, verbose bool) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w.NoColor = false
	}
	return zerolog.New(w).Level(level(verbose)).With().Timestamp().Logger()
}

// level picks the logging level, the environment wins over the command line
func level(verbose bool) zerolog.Level {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		return lvl
	}
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// ParseLevel reads a level name, the second return is false for an empty or unknown name
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "disabled":
		return zerolog.Disabled, true
	}
	return zerolog.InfoLevel, false
}
