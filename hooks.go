package glossync

import (
	"sync"

	"github.com/agentstation/glossync/pkg/reconciler"
)

// Hook function types for refresh events
type (
	// RefreshedHook is called after a successful refresh
	RefreshedHook func(result *reconciler.Result)

	// RefreshFailedHook is called after a failed refresh; result holds
	// whatever was done before the failure and may be nil
	RefreshFailedHook func(err error, result *reconciler.Result)
)

// Hooks registers callbacks for refresh outcomes.
type Hooks interface {
	// OnRefreshed registers a callback for successful refreshes
	OnRefreshed(fn RefreshedHook)

	// OnRefreshFailed registers a callback for failed refreshes
	OnRefreshFailed(fn RefreshFailedHook)
}

// hooks manages refresh callbacks
type hooks struct {
	mu              sync.RWMutex
	onRefreshed     []RefreshedHook
	onRefreshFailed []RefreshFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnRefreshed implements Hooks.
func (c *connector) OnRefreshed(fn RefreshedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRefreshed = append(c.hooks.onRefreshed, fn)
}

// OnRefreshFailed implements Hooks.
func (c *connector) OnRefreshFailed(fn RefreshFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRefreshFailed = append(c.hooks.onRefreshFailed, fn)
}

func (h *hooks) triggerRefreshed(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRefreshed {
		hook(result)
	}
}

func (h *hooks) triggerRefreshFailed(err error, result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRefreshFailed {
		hook(err, result)
	}
}
