package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/logging"
)

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithConnector(ctx, "atlas-sync")
	ctx = logging.WithOperation(ctx, "refresh")
	ctx = logging.WithGlossary(ctx, "glossary-guid-1")
	ctx = logging.WithElement(ctx, "GlossaryTerm", "term-guid-7")
	ctx = logging.WithAtlasGUID(ctx, "atlas-term-3")

	logging.FromContext(ctx).Info().Msg("reconciled")

	tl.AssertContains(t, `"connector":"atlas-sync"`)
	tl.AssertContains(t, `"operation":"refresh"`)
	tl.AssertContains(t, `"glossary_guid":"glossary-guid-1"`)
	tl.AssertContains(t, `"element_kind":"GlossaryTerm"`)
	tl.AssertContains(t, `"element_guid":"term-guid-7"`)
	tl.AssertContains(t, `"atlas_guid":"atlas-term-3"`)
	assert.Equal(t, 1, tl.Count())
}

func TestFieldsDoNotLeakToParent(t *testing.T) {
	tl := logging.NewTestLogger(t)
	parent := logging.WithLogger(context.Background(), tl.Logger)
	_ = logging.WithEvent(parent, "TermUpdated")

	logging.FromContext(parent).Info().Msg("parent")
	tl.AssertNotContains(t, "TermUpdated")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // exercising the nil guard
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(logging.WithLogger(context.Background(), nil)))
}

func TestRequestID(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	assert.Empty(t, logging.RequestID(ctx))

	ctx = logging.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", logging.RequestID(ctx))
	logging.FromContext(ctx).Info().Msg("handled")
	tl.AssertContains(t, `"request_id":"req-123"`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		present []string
		absent  []string
	}{
		{"debug", "debug", []string{`"message":"debug"`, `"message":"info"`}, nil},
		{"error only", "error", []string{`"message":"error"`}, []string{`"message":"info"`}},
		{"unknown means info", "loud", []string{`"message":"info"`}, []string{`"message":"debug"`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "glossync.log")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tc.level,
				Format: "json",
				Output: path,
			})

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, s := range tc.present {
				assert.Contains(t, string(data), s)
			}
			for _, s := range tc.absent {
				assert.NotContains(t, string(data), s)
			}
		})
	}
}

func TestLevelIsPerLogger(t *testing.T) {
	quiet := logging.NewLoggerFromConfig(&logging.Config{Level: "error", Output: "discard"})
	loud := logging.NewLoggerFromConfig(&logging.Config{Level: "trace", Output: "discard"})

	assert.Equal(t, "error", quiet.GetLevel().String())
	assert.Equal(t, "trace", loud.GetLevel().String())
}
