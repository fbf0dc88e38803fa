package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/glossync/internal/config"
	"github.com/agentstation/glossync/pkg/logging"
)

// NewLogger creates a logger from configuration and flags.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -q/--quiet flag (shortcut for warn)
//  3. -v/--verbose flag (shortcut for debug)
//  4. log.level from configuration (GLOSSYNC_LOG_LEVEL)
//  5. Default (info)
func NewLogger(cfg config.LogConfig, flags Flags) zerolog.Logger {
	level := determineLogLevel(cfg.Level, flags)

	format := cfg.Format
	if flags.LogFormat != "" {
		format = flags.LogFormat
	}

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    cfg.Output,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel applies the precedence rules of NewLogger.
func determineLogLevel(configured string, flags Flags) string {
	if flags.LogLevel != "" {
		validated := validateLogLevel(flags.LogLevel)
		if validated != flags.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", flags.LogLevel, validated)
		}
		return validated
	}

	if flags.Verbose && flags.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if flags.Quiet {
		return "warn"
	}
	if flags.Verbose {
		return "debug"
	}

	if configured != "" {
		return validateLogLevel(configured)
	}
	return "info"
}

// validateLogLevel returns level if valid, otherwise "info".
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}
