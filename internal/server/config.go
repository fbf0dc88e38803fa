package server

import (
	"time"

	"github.com/agentstation/glossync/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// Authentication settings; an empty APIKey disables authentication
	APIKey     string
	AuthHeader string

	// RateLimit is requests per minute per client (0 to disable)
	RateLimit int

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "",
		Port:         constants.DefaultServerPort,
		PathPrefix:   constants.DefaultPathPrefix,
		AuthHeader:   "X-API-Key",
		RateLimit:    120,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Minute, // refreshes of large glossaries take minutes
		IdleTimeout:  120 * time.Second,
	}
}
