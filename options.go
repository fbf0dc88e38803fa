package glossync

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/listener"
	"github.com/agentstation/glossync/pkg/reconciler"
)

// Metrics receives refresh, action and event measurements.
type Metrics interface {
	reconciler.Recorder
	listener.Observer

	RefreshStarted()
	RefreshFinished(result *reconciler.Result, err error)
	RefreshRejected()
}

// options holds the connector configuration.
type options struct {
	name       string
	scope      reconciler.Scope
	pageSize   int
	collection string
	prefixes   *reconciler.Prefixes
	schedule   string
	metrics    Metrics
	logger     *zerolog.Logger
}

// Option is a function that configures a Connector.
type Option func(*options) error

func defaults() *options {
	return &options{
		name:       constants.DefaultConnectorName,
		pageSize:   constants.DefaultPageSize,
		collection: constants.DefaultCollection,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) reconcilerOptions() []reconciler.Option {
	opts := []reconciler.Option{
		reconciler.WithConnectorName(o.name),
		reconciler.WithScope(o.scope),
		reconciler.WithPageSize(o.pageSize),
		reconciler.WithCollection(o.collection),
	}
	if o.prefixes != nil {
		opts = append(opts, reconciler.WithQualifiedNamePrefixes(*o.prefixes))
	}
	if o.metrics != nil {
		opts = append(opts, reconciler.WithRecorder(o.metrics))
	}
	return opts
}

// WithConnectorName sets the name used in logs and errors.
func WithConnectorName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		o.name = name
		return nil
	}
}

// WithScope restricts synchronization to one Egeria and/or one Atlas glossary.
func WithScope(scope reconciler.Scope) Option {
	return func(o *options) error {
		o.scope = scope
		return nil
	}
}

// WithPageSize sets the listing page size.
func WithPageSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return &errors.ValidationError{Field: "pageSize", Value: size, Message: "must be positive"}
		}
		o.pageSize = size
		return nil
	}
}

// WithCollection sets the Egeria metadata collection that holds copies of
// Atlas originals.
func WithCollection(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{Field: "collection", Message: "cannot be empty"}
		}
		o.collection = name
		return nil
	}
}

// WithQualifiedNamePrefixes overrides the qualified name prefixes of Egeria
// copies.
func WithQualifiedNamePrefixes(p reconciler.Prefixes) Option {
	return func(o *options) error {
		o.prefixes = &p
		return nil
	}
}

// WithSchedule runs refreshes on a cron spec such as "*/10 * * * *" or
// "@every 5m". Empty disables scheduled refreshes.
func WithSchedule(spec string) Option {
	return func(o *options) error {
		if spec != "" {
			if _, err := ParseSchedule(spec); err != nil {
				return &errors.ValidationError{Field: "schedule", Value: spec, Message: err.Error()}
			}
		}
		o.schedule = spec
		return nil
	}
}

// WithMetrics records refreshes, engine actions and event outcomes.
func WithMetrics(m Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithLogger sets the logger used by scheduled refreshes.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
