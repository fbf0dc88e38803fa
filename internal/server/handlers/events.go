package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/glossync/internal/server/response"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/logging"
)

// maxEventBytes bounds the size of one event payload.
const maxEventBytes = 1 << 20

// HandleEvent handles POST {prefix}/events, the Egeria change event webhook.
// The event is processed before the response is written.
func (h *Handlers) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event egeria.Event
	dec := json.NewDecoder(io.LimitReader(r.Body, maxEventBytes))
	if err := dec.Decode(&event); err != nil {
		response.BadRequest(w, "Invalid event payload", err.Error())
		return
	}
	if event.Type == "" || event.ElementHeader.GUID == "" {
		response.BadRequest(w, "Invalid event payload", "eventType and elementHeader.guid are required")
		return
	}

	ctx := logging.WithElement(r.Context(), string(event.ElementHeader.Kind()), event.ElementHeader.GUID)
	delivered := h.events.Deliver(ctx, event)
	if delivered == 0 {
		logging.FromContext(ctx).Debug().Msg("Event received before any listener was registered")
	}
	response.Accepted(w, map[string]any{
		"event_type": event.Type,
		"guid":       event.ElementHeader.GUID,
		"listeners":  delivered,
	})
}
