package egeria

import "context"

// GlossaryExchange covers glossary lookups and writes.
type GlossaryExchange interface {
	// ListGlossaries returns one page of glossaries starting at startFrom.
	ListGlossaries(ctx context.Context, startFrom, pageSize int) ([]*GlossaryElement, error)
	GetGlossaryByGUID(ctx context.Context, guid string) (*GlossaryElement, error)
	// GetGlossaryByName returns the glossary with exactly this qualified
	// name, or a NotFound-kind error.
	GetGlossaryByName(ctx context.Context, qualifiedName string) (*GlossaryElement, error)
	// CreateGlossary creates a glossary. A non-nil correlation marks the new
	// element as a copy owned by the correlation's scope.
	CreateGlossary(ctx context.Context, props GlossaryProperties, correlation *ExternalIdentifier) (string, error)
	UpdateGlossary(ctx context.Context, guid string, props GlossaryProperties) error
}

// CategoryExchange covers category lookups, writes and the category hierarchy.
type CategoryExchange interface {
	GetCategoriesForGlossary(ctx context.Context, glossaryGUID string, startFrom, pageSize int) ([]*CategoryElement, error)
	GetCategoryByGUID(ctx context.Context, guid string) (*CategoryElement, error)
	CreateCategory(ctx context.Context, glossaryGUID string, props CategoryProperties, correlation *ExternalIdentifier) (string, error)
	UpdateCategory(ctx context.Context, guid string, props CategoryProperties) error
	// GetCategoryParent returns the parent category, or nil if there is none.
	GetCategoryParent(ctx context.Context, categoryGUID string) (*CategoryElement, error)
	SetupCategoryParent(ctx context.Context, parentGUID, childGUID string) error
	ClearCategoryParent(ctx context.Context, parentGUID, childGUID string) error
	GetGlossaryForCategory(ctx context.Context, categoryGUID string) (*GlossaryElement, error)
}

// TermExchange covers term lookups, writes and term categorization.
type TermExchange interface {
	GetTermsForGlossary(ctx context.Context, glossaryGUID string, startFrom, pageSize int) ([]*TermElement, error)
	GetTermByGUID(ctx context.Context, guid string) (*TermElement, error)
	CreateTerm(ctx context.Context, glossaryGUID string, props TermProperties, correlation *ExternalIdentifier) (string, error)
	UpdateTerm(ctx context.Context, guid string, props TermProperties) error
	GetCategoriesForTerm(ctx context.Context, termGUID string, startFrom, pageSize int) ([]*CategoryElement, error)
	SetupTermCategory(ctx context.Context, categoryGUID, termGUID string) error
	ClearTermCategory(ctx context.Context, categoryGUID, termGUID string) error
	GetGlossaryForTerm(ctx context.Context, termGUID string) (*GlossaryElement, error)
}

// Correlator records correlation records on existing elements.
type Correlator interface {
	// AddExternalIdentifier attaches id to the element, replacing any record
	// with the same scope and identifier name.
	AddExternalIdentifier(ctx context.Context, elementGUID string, kind ElementKind, id ExternalIdentifier) error
}

// EventSource delivers change events to registered listeners.
type EventSource interface {
	RegisterListener(listener EventListener) error
}

// Exchange is the full open-metadata exchange service contract.
type Exchange interface {
	GlossaryExchange
	CategoryExchange
	TermExchange
	Correlator
	EventSource

	// MaxPageSize is the largest page the service accepts; 0 means unbounded.
	MaxPageSize() int
}
