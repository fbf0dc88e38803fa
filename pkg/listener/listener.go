// Package listener applies Egeria change events to Atlas one element at a
// time, using the same per-element logic as a full refresh.
package listener

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/ownership"
)

// Engine is the per-element reconciliation logic events are routed to.
type Engine interface {
	ReconcileGlossary(ctx context.Context, g *egeria.GlossaryElement) error
	ReconcileCategory(ctx context.Context, c *egeria.CategoryElement) error
	ReconcileTerm(ctx context.Context, t *egeria.TermElement) error
}

// Lookup fetches the current state of the element an event refers to.
type Lookup interface {
	GetGlossaryByGUID(ctx context.Context, guid string) (*egeria.GlossaryElement, error)
	GetCategoryByGUID(ctx context.Context, guid string) (*egeria.CategoryElement, error)
	GetTermByGUID(ctx context.Context, guid string) (*egeria.TermElement, error)
	GetGlossaryForCategory(ctx context.Context, categoryGUID string) (*egeria.GlossaryElement, error)
	GetGlossaryForTerm(ctx context.Context, termGUID string) (*egeria.GlossaryElement, error)
}

// State reports whether the host is running a full refresh.
type State interface {
	Refreshing() bool
}

// Outcome is what happened to one event.
type Outcome string

// Event outcomes.
const (
	OutcomeProcessed   Outcome = "processed"
	OutcomeRefreshing  Outcome = "ignored_refreshing"
	OutcomeEcho        Outcome = "ignored_echo"
	OutcomeOutOfScope  Outcome = "ignored_out_of_scope"
	OutcomeUnsupported Outcome = "ignored_unsupported"
	OutcomeGone        Outcome = "gone"
	OutcomeFailed      Outcome = "failed"
)

// Observer is notified of every handled event.
type Observer interface {
	ObserveEvent(event egeria.Event, outcome Outcome, duration time.Duration)
}

// Listener implements egeria.EventListener.
type Listener struct {
	engine   Engine
	lookup   Lookup
	resolver *ownership.Resolver
	state    State

	scope     string
	connector string
	observer  Observer
}

var _ egeria.EventListener = (*Listener)(nil)

// New creates a Listener.
func New(engine Engine, lookup Lookup, resolver *ownership.Resolver, state State, opts ...Option) (*Listener, error) {
	switch {
	case engine == nil:
		return nil, &errors.ValidationError{Field: "engine", Message: "cannot be nil"}
	case lookup == nil:
		return nil, &errors.ValidationError{Field: "lookup", Message: "cannot be nil"}
	case resolver == nil:
		return nil, &errors.ValidationError{Field: "resolver", Message: "cannot be nil"}
	case state == nil:
		return nil, &errors.ValidationError{Field: "state", Message: "cannot be nil"}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Listener{
		engine:    engine,
		lookup:    lookup,
		resolver:  resolver,
		state:     state,
		scope:     options.scope,
		connector: options.connector,
		observer:  options.observer,
	}, nil
}

// ProcessEvent implements egeria.EventListener. Failures are logged and
// never escape.
func (l *Listener) ProcessEvent(ctx context.Context, event egeria.Event) {
	l.Handle(ctx, event)
}

// Handle processes one event and reports its outcome.
func (l *Listener) Handle(ctx context.Context, event egeria.Event) (outcome Outcome) {
	start := time.Now()
	h := event.ElementHeader
	ctx = logging.WithConnector(ctx, l.connector)
	ctx = logging.WithOperation(ctx, "event")
	ctx = logging.WithElement(ctx, string(h.Kind()), h.GUID)
	ctx = logging.WithEvent(ctx, string(event.Type))
	logger := logging.FromContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			logger.Error().
				Str("panic", fmt.Sprint(p)).
				Msg("Recovered from panic while processing event")
			outcome = OutcomeFailed
		}
		if l.observer != nil {
			l.observer.ObserveEvent(event, outcome, time.Since(start))
		}
	}()

	if l.state.Refreshing() {
		logger.Trace().Msg("Refresh in progress; ignoring event")
		return OutcomeRefreshing
	}
	if l.resolver.IsThirdPartyOwned(h) {
		logger.Trace().Msg("Element is a copy of an Atlas original; ignoring event")
		return OutcomeEcho
	}

	err := l.dispatch(ctx, h)
	switch {
	case err == nil:
		logger.Debug().Msg("Event processed")
		return OutcomeProcessed
	case errors.Is(err, errOutOfScope):
		logger.Debug().Str("scope", l.scope).Msg("Element belongs to another glossary; ignoring event")
		return OutcomeOutOfScope
	case errors.Is(err, errUnsupported):
		logger.Trace().Msg("Event is not about a glossary element")
		return OutcomeUnsupported
	case errors.IsGone(err):
		logger.Debug().Err(err).Msg("Element likely already deleted")
		return OutcomeGone
	default:
		logger.Error().Err(err).Msg("Failed to process event")
		return OutcomeFailed
	}
}

var (
	errOutOfScope  = errors.New("out of scope")
	errUnsupported = errors.New("unsupported element type")
)

func (l *Listener) dispatch(ctx context.Context, h egeria.ElementHeader) error {
	switch h.Kind() {
	case egeria.KindGlossary:
		g, err := l.lookup.GetGlossaryByGUID(ctx, h.GUID)
		if err != nil {
			return err
		}
		if !l.inScope(g) {
			return errOutOfScope
		}
		return l.engine.ReconcileGlossary(ctx, g)

	case egeria.KindCategory:
		if l.scope != "" {
			g, err := l.lookup.GetGlossaryForCategory(ctx, h.GUID)
			if err != nil {
				return err
			}
			if !l.inScope(g) {
				return errOutOfScope
			}
		}
		c, err := l.lookup.GetCategoryByGUID(ctx, h.GUID)
		if err != nil {
			return err
		}
		return l.engine.ReconcileCategory(ctx, c)

	case egeria.KindTerm:
		if l.scope != "" {
			g, err := l.lookup.GetGlossaryForTerm(ctx, h.GUID)
			if err != nil {
				return err
			}
			if !l.inScope(g) {
				return errOutOfScope
			}
		}
		t, err := l.lookup.GetTermByGUID(ctx, h.GUID)
		if err != nil {
			return err
		}
		return l.engine.ReconcileTerm(ctx, t)
	}
	return errUnsupported
}

func (l *Listener) inScope(g *egeria.GlossaryElement) bool {
	return l.scope == "" || (g != nil && g.Properties.QualifiedName == l.scope)
}
