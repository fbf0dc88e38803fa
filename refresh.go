package glossync

import (
	"context"

	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// Refresher runs reconciliation cycles.
type Refresher interface {
	// Refresh runs one full reconciliation cycle. It returns
	// errors.ErrRefreshInProgress without waiting if another cycle is
	// running. On failure the partial result is returned with the error.
	Refresh(ctx context.Context) (*reconciler.Result, error)
}

// Refresh implements Refresher.
func (c *connector) Refresh(ctx context.Context) (*reconciler.Result, error) {
	if !c.mu.TryLock() {
		if c.options.metrics != nil {
			c.options.metrics.RefreshRejected()
		}
		return nil, errors.ErrRefreshInProgress
	}
	defer c.mu.Unlock()

	ctx = logging.WithConnector(ctx, c.options.name)
	result, err := c.refresh(ctx)
	if err != nil {
		c.hooks.triggerRefreshFailed(err, result)
		return result, err
	}

	// Events are only meaningful once both sides have been reconciled.
	if !c.registered.Load() {
		if err := c.exchange.RegisterListener(c.listener); err != nil {
			err = errors.WrapResource("register", "listener", c.options.name, err)
			c.hooks.triggerRefreshFailed(err, result)
			return result, err
		}
		c.registered.Store(true)
		logging.FromContext(ctx).Info().Msg("Registered Egeria event listener")
	}

	c.hooks.triggerRefreshed(result)
	return result, nil
}

func (c *connector) refresh(ctx context.Context) (*reconciler.Result, error) {
	c.refreshing.Store(true)
	defer c.refreshing.Store(false)

	if m := c.options.metrics; m != nil {
		m.RefreshStarted()
		result, err := c.engine.Refresh(ctx)
		m.RefreshFinished(result, err)
		return result, err
	}
	return c.engine.Refresh(ctx)
}
