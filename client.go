// Package glossync hosts the Egeria ↔ Apache Atlas glossary connector.
//
// A Connector owns one reconciliation engine and one event listener. It
// serializes refresh cycles, exposes whether a refresh is running so that
// change events arriving meanwhile are ignored, registers the listener with
// the Egeria exchange after the first successful refresh, and can run
// refreshes on a cron schedule.
//
// Example usage:
//
//	conn, err := glossync.New(atlasClient, egeriaClient,
//	    glossync.WithSchedule("@every 10m"),
//	    glossync.WithScope(reconciler.Scope{GlossaryQualifiedName: "Coco.Glossary"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conn.OnRefreshFailed(func(err error, _ *reconciler.Result) {
//	    log.Printf("refresh failed: %v", err)
//	})
//	if err := conn.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Stop(context.Background())
package glossync

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/listener"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// Compile-time interface checks.
var (
	_ Connector      = (*connector)(nil)
	_ listener.State = (*connector)(nil)
)

// Connector runs glossary synchronization between Egeria and Atlas.
type Connector interface {
	// Refresher runs reconciliation cycles
	Refresher

	// AutoRefresher controls scheduled refreshes
	AutoRefresher

	// Hooks registers refresh callbacks
	Hooks

	// Refreshing reports whether a refresh cycle is running.
	Refreshing() bool

	// Start runs an initial refresh and starts the schedule, if any.
	// A failed initial refresh is reported through the hooks and retried
	// by the schedule; it does not fail Start.
	Start(ctx context.Context) error

	// Stop stops the schedule and waits for a running scheduled refresh.
	Stop(ctx context.Context) error
}

// connector is the internal implementation of the Connector interface.
type connector struct {
	options *options

	engine   *reconciler.Reconciler
	exchange egeria.Exchange
	listener *listener.Listener

	// mu serializes refresh cycles and event handling.
	mu         sync.Mutex
	refreshing atomic.Bool
	registered atomic.Bool

	cronMu sync.Mutex
	cron   *cron.Cron

	hooks *hooks
}

// New creates a Connector over the given Atlas client and Egeria exchange.
func New(client atlas.Client, exchange egeria.Exchange, opts ...Option) (Connector, error) {
	options, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	engine, err := reconciler.New(client, exchange, options.reconcilerOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", options.name, err)
	}

	c := &connector{
		options:  options,
		engine:   engine,
		exchange: exchange,
		hooks:    newHooks(),
	}

	listenerOpts := []listener.Option{
		listener.WithGlossaryScope(options.scope.GlossaryQualifiedName),
		listener.WithConnectorName(options.name),
	}
	if options.metrics != nil {
		listenerOpts = append(listenerOpts, listener.WithObserver(options.metrics))
	}
	c.listener, err = listener.New(&serialEngine{c: c}, exchange, engine.Resolver(), c, listenerOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "listener", options.name, err)
	}
	return c, nil
}

// Refreshing implements listener.State.
func (c *connector) Refreshing() bool {
	return c.refreshing.Load()
}

// Start implements Connector.
func (c *connector) Start(ctx context.Context) error {
	if _, err := c.Refresh(ctx); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("connector", c.options.name).
			Msg("Initial refresh failed; waiting for the next scheduled refresh")
	}
	if c.options.schedule == "" {
		return nil
	}
	return c.AutoRefreshOn(ctx)
}

// Stop implements Connector.
func (c *connector) Stop(ctx context.Context) error {
	return c.AutoRefreshOff(ctx)
}

// serialEngine runs listener-driven reconciliation under the connector's
// lock so that events never overlap a refresh or each other.
type serialEngine struct {
	c *connector
}

func (s *serialEngine) ReconcileGlossary(ctx context.Context, g *egeria.GlossaryElement) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.engine.ReconcileGlossary(ctx, g)
}

func (s *serialEngine) ReconcileCategory(ctx context.Context, cat *egeria.CategoryElement) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.engine.ReconcileCategory(ctx, cat)
}

func (s *serialEngine) ReconcileTerm(ctx context.Context, t *egeria.TermElement) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.engine.ReconcileTerm(ctx, t)
}
