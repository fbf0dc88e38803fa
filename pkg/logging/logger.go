// Package logging carries zerolog loggers through the connector. A logger
// travels in a context.Context and picks up the fields of the refresh or
// event it is serving: connector name, glossary, element and Atlas GUIDs.
//
//	ctx = logging.WithConnector(ctx, "atlas-sync")
//	ctx = logging.WithGlossary(ctx, guid)
//	logging.FromContext(ctx).Debug().Msg("Reconciling categories")
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	goisatty "github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/glossync/pkg/constants"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path.
	Output string

	// AddCaller includes file:line in every entry.
	AddCaller bool

	NoColor bool
}

var defaultLogger = NewLoggerFromConfig(&Config{
	Level:   os.Getenv("GLOSSYNC_LOG_LEVEL"),
	Format:  os.Getenv("GLOSSYNC_LOG_FORMAT"),
	NoColor: os.Getenv("NO_COLOR") != "",
})

// Default returns the logger used when a context carries none.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// NewLoggerFromConfig builds a logger. The level is set on the logger itself,
// so two connectors in one process can log at different levels.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}
	level := parseLevel(cfg.Level)

	logger := zerolog.New(writer(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.AddCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

func writer(cfg *Config) io.Writer {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
		} else {
			out = f
		}
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
	case "", "auto":
		if !terminal(out) {
			return out
		}
	default:
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return goisatty.IsTerminal(f.Fd()) || goisatty.IsCygwinTerminal(f.Fd())
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
