package listener

import (
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
)

type options struct {
	scope     string
	connector string
	observer  Observer
}

// Option is a function that configures a Listener.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := &options{connector: constants.DefaultConnectorName}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithGlossaryScope drops events for elements outside the glossary with
// this qualified name. Empty means every glossary.
func WithGlossaryScope(qualifiedName string) Option {
	return func(o *options) error {
		o.scope = qualifiedName
		return nil
	}
}

// WithConnectorName sets the connector name used in logs.
func WithConnectorName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{Field: "connector", Message: "cannot be empty"}
		}
		o.connector = name
		return nil
	}
}

// WithObserver sets an observer notified of every event outcome.
func WithObserver(observer Observer) Option {
	return func(o *options) error {
		o.observer = observer
		return nil
	}
}
