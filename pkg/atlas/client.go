package atlas

import "context"

// Client is the Atlas glossary REST contract. Every failure carries an error
// kind from pkg/errors: NotFound for missing elements, NameConflict when a
// create collides with an existing name, Transport for everything else.
type Client interface {
	// ListGlossaries returns up to limit glossaries starting at offset.
	ListGlossaries(ctx context.Context, offset, limit int) ([]*Glossary, error)

	GetGlossary(ctx context.Context, guid string) (*Glossary, error)
	CreateGlossary(ctx context.Context, glossary *Glossary) (string, error)
	SaveGlossary(ctx context.Context, glossary *Glossary) (*Glossary, error)
	DeleteGlossary(ctx context.Context, guid string) error

	GetCategory(ctx context.Context, guid string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) (string, error)
	SaveCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, guid string) error

	GetTerm(ctx context.Context, guid string) (*Term, error)
	CreateTerm(ctx context.Context, term *Term) (string, error)
	SaveTerm(ctx context.Context, term *Term) (*Term, error)
	DeleteTerm(ctx context.Context, guid string) error
}
