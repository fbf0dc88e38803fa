package egeria

import "context"

// EventType is the kind of change an event reports.
type EventType string

// Event types emitted by the exchange service.
const (
	EventNewElement       EventType = "NEW_ELEMENT_CREATED"
	EventUpdatedElement   EventType = "ELEMENT_UPDATED"
	EventDeletedElement   EventType = "ELEMENT_DELETED"
	EventNewRelationship  EventType = "NEW_RELATIONSHIP_CREATED"
	EventClassifiedChange EventType = "ELEMENT_CLASSIFIED"
)

// Event is a single-element change notification.
type Event struct {
	Type          EventType     `json:"eventType"`
	ElementHeader ElementHeader `json:"elementHeader"`
}

// EventListener receives change events. Implementations must not panic and
// must not block the event source for long.
type EventListener interface {
	ProcessEvent(ctx context.Context, event Event)
}

// EventListenerFunc adapts a function to EventListener.
type EventListenerFunc func(ctx context.Context, event Event)

// ProcessEvent calls f.
func (f EventListenerFunc) ProcessEvent(ctx context.Context, event Event) { f(ctx, event) }
