package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/internal/memory"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// isolate runs the test in an empty directory with an empty $HOME so no
// stray config or .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	a := New("1.2.3", "abc123", "2026-01-01", "test", WithOutput(&out))

	require.NoError(t, a.Execute(context.Background(), []string{"--format", "json", "version"}))

	var info versionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-01-01", info.Date)
	assert.Equal(t, "1.2.3", a.Version())
}

func TestRefreshCommand(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	atlasStore := memory.NewAtlas()
	egeriaStore := memory.NewEgeria("cocoMDS1", 0)
	_, err := egeriaStore.CreateGlossary(ctx, egeria.GlossaryProperties{
		QualifiedName: "Glossary::Sales",
		DisplayName:   "Sales",
	}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	a := New("dev", "", "", "", WithOutput(&out), WithBackends(atlasStore, egeriaStore))
	require.NoError(t, a.Execute(ctx, []string{"refresh", "-o", "json", "-q"}))

	var result reconciler.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 1, result.Glossaries.Created)
	assert.Equal(t, 1, atlasStore.GlossaryCount())
	require.NotNil(t, a.Config())
	assert.Equal(t, "AtlasGlossarySync", a.Config().Connector.Name)
}

func TestRefreshCommandPrintsPartialResult(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	atlasStore := memory.NewAtlas()
	egeriaStore := memory.NewEgeria("cocoMDS1", 0)
	_, err := egeriaStore.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "Glossary::Ops"}, nil)
	require.NoError(t, err)
	boom := errors.NewServiceError("atlas", "list glossaries", errors.KindTransport, "unreachable", nil)
	atlasStore.Fail("ListGlossaries", boom)

	var out bytes.Buffer
	a := New("dev", "", "", "", WithOutput(&out), WithBackends(atlasStore, egeriaStore))
	err = a.Execute(ctx, []string{"refresh", "--format", "yaml", "-q"})
	require.Error(t, err)

	var connErr *errors.ConnectorError
	assert.ErrorAs(t, err, &connErr)
	assert.Contains(t, out.String(), "glossaries:")
}

func TestRefreshCommandRequiresEgeriaSettings(t *testing.T) {
	isolate(t)
	a := New("dev", "", "", "", WithOutput(&bytes.Buffer{}))

	err := a.Execute(context.Background(), []string{"refresh", "-q"})
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "egeria.server", ve.Field)
}

func TestRefreshCommandRejectsUnknownFormat(t *testing.T) {
	isolate(t)
	a := New("dev", "", "", "", WithOutput(&bytes.Buffer{}),
		WithBackends(memory.NewAtlas(), memory.NewEgeria("cocoMDS1", 0)))

	err := a.Execute(context.Background(), []string{"refresh", "--format", "csv"})
	assert.True(t, errors.IsValidationError(err))
}

func TestConfigFileFlag(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("connector:\n  name: FromFile\nlog:\n  level: error\n"), 0o644))

	a := New("dev", "", "", "", WithOutput(&bytes.Buffer{}),
		WithBackends(memory.NewAtlas(), memory.NewEgeria("cocoMDS1", 0)))
	require.NoError(t, a.Execute(context.Background(), []string{"--config", file, "refresh", "-o", "json"}))

	assert.Equal(t, "FromFile", a.Config().Connector.Name)
	assert.Equal(t, file, a.Config().ConfigFile)
}

func TestServeRequiresPushCapableExchange(t *testing.T) {
	isolate(t)
	a := New("dev", "", "", "", WithOutput(&bytes.Buffer{}),
		WithBackends(memory.NewAtlas(), memory.NewEgeria("cocoMDS1", 0)))

	err := a.Execute(context.Background(), []string{"serve", "-q"})
	var ce *errors.ConfigError
	assert.ErrorAs(t, err, &ce)
}
