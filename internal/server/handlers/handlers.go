// Package handlers provides HTTP request handlers for the control surface.
package handlers

import (
	"context"
	"time"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// Refresher runs refresh cycles on demand.
type Refresher interface {
	Refresh(ctx context.Context) (*reconciler.Result, error)
	Refreshing() bool
}

// EventSink hands Egeria change events to the registered listeners and
// returns how many received them.
type EventSink interface {
	Deliver(ctx context.Context, event egeria.Event) int
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	refresher Refresher
	events    EventSink
	version   string
	startTime time.Time
}

// New creates a new Handlers instance.
func New(refresher Refresher, events EventSink, version string, startTime time.Time) *Handlers {
	return &Handlers{
		refresher: refresher,
		events:    events,
		version:   version,
		startTime: startTime,
	}
}
