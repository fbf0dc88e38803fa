package handlers

import (
	"net/http"

	"github.com/agentstation/glossync/internal/server/response"
	"github.com/agentstation/glossync/pkg/logging"
)

// HandleRefresh handles POST {prefix}/refresh. It runs a full refresh and
// returns its result; a failed refresh returns the partial result alongside
// the error.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithOperation(r.Context(), "http refresh")
	result, err := h.refresher.Refresh(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("On-demand refresh did not complete")
		if result == nil {
			response.RefreshError(w, err, nil)
			return
		}
		response.RefreshError(w, err, result)
		return
	}
	response.OK(w, result)
}
