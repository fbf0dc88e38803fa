// Package app wires configuration, logging and the connector together for
// the glossync CLI.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/glossync"
	"github.com/agentstation/glossync/internal/atlasclient"
	"github.com/agentstation/glossync/internal/config"
	"github.com/agentstation/glossync/internal/egeriaclient"
	"github.com/agentstation/glossync/internal/metrics"
	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// App holds the CLI's configuration and lazily built dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	flags  Flags
	config *config.Config
	logger *zerolog.Logger
	out    io.Writer

	mu       sync.Mutex
	atlas    atlas.Client
	exchange egeria.Exchange
	metrics  *metrics.Metrics
}

// Option configures an App.
type Option func(*App)

// WithBackends replaces the Atlas and Egeria REST clients.
func WithBackends(client atlas.Client, exchange egeria.Exchange) Option {
	return func(a *App) {
		a.atlas = client
		a.exchange = exchange
	}
}

// WithOutput sets where command output is written.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// New creates a new App with the given version information. Configuration
// is loaded once flags are parsed.
func New(version, commit, date, builtBy string, opts ...Option) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		logger:  logging.Default(),
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the loaded configuration; nil before a command runs.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Metrics returns the metrics registry, creating it on first use.
func (a *App) Metrics() *metrics.Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.metrics == nil {
		a.metrics = metrics.New()
	}
	return a.metrics
}

// backends returns the REST clients, building them from configuration
// unless they were injected.
func (a *App) backends() (atlas.Client, egeria.Exchange, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.atlas != nil && a.exchange != nil {
		return a.atlas, a.exchange, nil
	}
	if a.config == nil {
		return nil, nil, errors.NewConfigError("app", "configuration not loaded", nil)
	}
	if err := a.config.Validate(); err != nil {
		return nil, nil, err
	}

	a.atlas = atlasclient.New(atlasclient.Config{
		URL:      a.config.Atlas.URL,
		Username: a.config.Atlas.Username,
		Password: a.config.Atlas.Password,
	})
	exchange, err := egeriaclient.New(egeriaclient.Config{
		URL:         a.config.Egeria.URL,
		Server:      a.config.Egeria.Server,
		UserID:      a.config.Egeria.UserID,
		MaxPageSize: a.config.Egeria.MaxPageSize,
	})
	if err != nil {
		return nil, nil, errors.WrapResource("create", "egeria client", a.config.Egeria.URL, err)
	}
	a.exchange = exchange
	return a.atlas, a.exchange, nil
}

// Connector builds a connector from configuration. schedule is applied only
// when scheduled is true.
func (a *App) Connector(scheduled bool) (glossync.Connector, egeria.Exchange, error) {
	client, exchange, err := a.backends()
	if err != nil {
		return nil, nil, err
	}

	cfg := a.config
	opts := []glossync.Option{
		glossync.WithConnectorName(cfg.Connector.Name),
		glossync.WithScope(reconciler.Scope{
			GlossaryQualifiedName: cfg.Sync.GlossaryQualifiedName,
			AtlasGlossaryName:     cfg.Sync.AtlasGlossaryName,
		}),
		glossync.WithPageSize(cfg.Sync.PageSize),
		glossync.WithCollection(cfg.Sync.Collection),
		glossync.WithMetrics(a.Metrics()),
		glossync.WithLogger(a.logger),
	}
	if scheduled && cfg.Sync.Schedule != "" {
		opts = append(opts, glossync.WithSchedule(cfg.Sync.Schedule))
	}

	conn, err := glossync.New(client, exchange, opts...)
	if err != nil {
		return nil, nil, errors.WrapResource("create", "connector", cfg.Connector.Name, err)
	}
	return conn, exchange, nil
}
