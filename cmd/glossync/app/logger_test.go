package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		flags      Flags
		expected   string
	}{
		{"default", "", Flags{}, "info"},
		{"configured", "warn", Flags{}, "warn"},
		{"invalid configured", "loud", Flags{}, "info"},
		{"verbose beats configured", "error", Flags{Verbose: true}, "debug"},
		{"quiet", "", Flags{Quiet: true}, "warn"},
		{"quiet beats verbose", "", Flags{Verbose: true, Quiet: true}, "warn"},
		{"explicit beats shortcuts", "info", Flags{LogLevel: "trace", Quiet: true}, "trace"},
		{"invalid explicit", "", Flags{LogLevel: "noisy"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.configured, tt.flags))
		})
	}
}
