package glossync

import (
	"context"
	stderrors "errors"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// AutoRefresher controls scheduled refreshes.
type AutoRefresher interface {
	// AutoRefreshOn starts refreshing on the configured schedule. ctx is the
	// parent of every scheduled refresh.
	AutoRefreshOn(ctx context.Context) error

	// AutoRefreshOff stops the schedule and waits, bounded by ctx, for a
	// running scheduled refresh to finish.
	AutoRefreshOff(ctx context.Context) error
}

// ParseSchedule parses a standard five-field cron spec or a descriptor such
// as "@hourly" or "@every 5m". It is the only schedule parser in glossync.
func ParseSchedule(spec string) (cron.Schedule, error) {
	return cron.ParseStandard(spec)
}

// AutoRefreshOn implements AutoRefresher.
func (c *connector) AutoRefreshOn(ctx context.Context) error {
	if c.options.schedule == "" {
		return &errors.ValidationError{Field: "schedule", Message: "no schedule configured"}
	}
	schedule, err := ParseSchedule(c.options.schedule)
	if err != nil {
		return &errors.ValidationError{Field: "schedule", Value: c.options.schedule, Message: err.Error()}
	}

	// Stop any existing schedule to prevent overlapping runners
	if err := c.AutoRefreshOff(ctx); err != nil {
		return err
	}

	logger := c.logger(ctx)
	runner := cron.New(
		cron.WithLogger(cronLogger{logger: logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
	)
	runner.Schedule(schedule, cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		_, err := c.Refresh(ctx)
		switch {
		case err == nil:
		case stderrors.Is(err, errors.ErrRefreshInProgress):
			logger.Debug().Msg("Scheduled refresh skipped; another refresh is running")
		case stderrors.Is(err, context.Canceled):
		default:
			logger.Error().Err(err).Msg("Scheduled refresh failed")
		}
	}))
	runner.Start()

	c.cronMu.Lock()
	c.cron = runner
	c.cronMu.Unlock()

	logger.Info().Str("schedule", c.options.schedule).Msg("Scheduled refreshes enabled")
	return nil
}

// AutoRefreshOff implements AutoRefresher.
func (c *connector) AutoRefreshOff(ctx context.Context) error {
	c.cronMu.Lock()
	runner := c.cron
	c.cron = nil
	c.cronMu.Unlock()

	if runner == nil {
		return nil
	}
	select {
	case <-runner.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *connector) logger(ctx context.Context) *zerolog.Logger {
	if c.options.logger != nil {
		l := c.options.logger.With().Str("connector", c.options.name).Logger()
		return &l
	}
	l := logging.FromContext(ctx).With().Str("connector", c.options.name).Logger()
	return &l
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
