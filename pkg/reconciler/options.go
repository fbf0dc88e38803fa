package reconciler

import (
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
)

// Scope restricts synchronization. Empty fields mean "everything".
type Scope struct {
	// GlossaryQualifiedName limits Egeria-side processing to one glossary.
	GlossaryQualifiedName string `json:"glossary_qualified_name,omitempty" yaml:"glossary_qualified_name,omitempty"`
	// AtlasGlossaryName limits Atlas-side processing to one glossary.
	AtlasGlossaryName string `json:"atlas_glossary_name,omitempty" yaml:"atlas_glossary_name,omitempty"`
}

// Prefixes are prepended to Atlas names when building qualified names for
// Egeria copies of Atlas originals.
type Prefixes struct {
	Glossary string
	Category string
	Term     string
}

// Recorder observes every action the engine takes.
type Recorder interface {
	RecordAction(kind egeria.ElementKind, action Action)
}

// options configures a Reconciler.
type options struct {
	scope      Scope
	pageSize   int
	collection string
	connector  string
	prefixes   Prefixes
	recorder   Recorder
}

func defaultOptions() *options {
	return &options{
		pageSize:   constants.DefaultPageSize,
		collection: constants.DefaultCollection,
		connector:  constants.DefaultConnectorName,
		prefixes: Prefixes{
			Glossary: constants.GlossaryQualifiedNamePrefix,
			Category: constants.CategoryQualifiedNamePrefix,
			Term:     constants.TermQualifiedNamePrefix,
		},
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithScope restricts synchronization to one Egeria glossary, one Atlas
// glossary, or both.
func WithScope(scope Scope) Option {
	return func(o *options) error {
		o.scope = scope
		return nil
	}
}

// WithPageSize sets the page size for paged listings. The exchange
// service's maximum still applies.
func WithPageSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return &errors.ValidationError{
				Field:   "page_size",
				Value:   size,
				Message: "must be positive",
			}
		}
		o.pageSize = size
		return nil
	}
}

// WithCollection sets the name of the metadata collection that Egeria copies
// of Atlas originals belong to.
func WithCollection(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{
				Field:   "collection",
				Message: "cannot be empty",
			}
		}
		o.collection = name
		return nil
	}
}

// WithConnectorName sets the connector name used in logs and errors.
func WithConnectorName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{
				Field:   "connector",
				Message: "cannot be empty",
			}
		}
		o.connector = name
		return nil
	}
}

// WithQualifiedNamePrefixes overrides the qualified name prefixes of Egeria copies.
func WithQualifiedNamePrefixes(p Prefixes) Option {
	return func(o *options) error {
		o.prefixes = p
		return nil
	}
}

// WithRecorder sets a recorder notified of every action.
func WithRecorder(r Recorder) Option {
	return func(o *options) error {
		o.recorder = r
		return nil
	}
}
