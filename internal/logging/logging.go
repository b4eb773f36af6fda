// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// EnvLevel overrides the level when neither --verbose nor --debug is given.
const EnvLevel = "CFLAGPATCH_LOG_LEVEL"

// Config captures options for building a logger.
type Config struct {
	Verbose bool      // info level
	Debug   bool      // debug level, wins over Verbose
	NoColor bool      // disable colors in console output
	Output  io.Writer // defaults to os.Stderr
}

// Level resolves the effective level from flags and the environment.
// The default is warn so a successful run only prints its summary line.
func (c Config) Level() zerolog.Level {
	switch {
	case c.Debug:
		return zerolog.DebugLevel
	case c.Verbose:
		return zerolog.InfoLevel
	}
	if env := os.Getenv(EnvLevel); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			return parsed
		}
	}
	return zerolog.WarnLevel
}

// New returns a logger writing to cfg.Output. Terminals get the human-readable
// console format; anything else gets JSON lines.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	if isTerminal(out) {
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
