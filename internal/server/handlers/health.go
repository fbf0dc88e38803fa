package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/glossync/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":     "healthy",
		"service":    "glossync",
		"version":    h.version,
		"refreshing": h.refresher.Refreshing(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	})
}
