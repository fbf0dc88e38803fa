// Package atlasclient implements atlas.Client over the Apache Atlas v2
// glossary REST API.
package atlasclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agentstation/glossync/internal/transport"
	"github.com/agentstation/glossync/pkg/atlas"
)

const (
	service      = "atlas"
	glossaryPath = "/api/atlas/v2/glossary"
	categoryPath = glossaryPath + "/category"
	termPath     = glossaryPath + "/term"
)

// Config holds connection settings.
type Config struct {
	URL      string
	Username string
	Password string
}

// Client talks to one Atlas server.
type Client struct {
	transport *transport.Client
}

var _ atlas.Client = (*Client)(nil)

// New creates a Client. Atlas authenticates with HTTP basic auth.
func New(cfg Config, opts ...transport.Option) *Client {
	auth := &transport.BasicAuth{Username: cfg.Username, Password: cfg.Password}
	return &Client{transport: transport.New(service, cfg.URL, auth, opts...)}
}

// ListGlossaries implements atlas.Client. Results are sorted ascending so
// that offsets are stable between calls.
func (c *Client) ListGlossaries(ctx context.Context, offset, limit int) ([]*atlas.Glossary, error) {
	query := url.Values{
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
		"sort":   {"ASC"},
	}
	var out []*atlas.Glossary
	err := c.transport.JSON(ctx, transport.Request{
		Operation: "list glossaries",
		Method:    http.MethodGet,
		Path:      glossaryPath,
		Query:     query,
	}, &out)
	return out, err
}

// GetGlossary implements atlas.Client.
func (c *Client) GetGlossary(ctx context.Context, guid string) (*atlas.Glossary, error) {
	var out atlas.Glossary
	if err := c.get(ctx, "get glossary", glossaryPath, guid, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateGlossary implements atlas.Client.
func (c *Client) CreateGlossary(ctx context.Context, glossary *atlas.Glossary) (string, error) {
	var out atlas.Glossary
	if err := c.create(ctx, "create glossary", glossaryPath, glossary, &out); err != nil {
		return "", err
	}
	return out.GUID, nil
}

// SaveGlossary implements atlas.Client.
func (c *Client) SaveGlossary(ctx context.Context, glossary *atlas.Glossary) (*atlas.Glossary, error) {
	var out atlas.Glossary
	if err := c.save(ctx, "save glossary", glossaryPath, glossary.GUID, glossary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGlossary implements atlas.Client.
func (c *Client) DeleteGlossary(ctx context.Context, guid string) error {
	return c.delete(ctx, "delete glossary", glossaryPath, guid)
}

// GetCategory implements atlas.Client.
func (c *Client) GetCategory(ctx context.Context, guid string) (*atlas.Category, error) {
	var out atlas.Category
	if err := c.get(ctx, "get category", categoryPath, guid, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory implements atlas.Client.
func (c *Client) CreateCategory(ctx context.Context, category *atlas.Category) (string, error) {
	var out atlas.Category
	if err := c.create(ctx, "create category", categoryPath, category, &out); err != nil {
		return "", err
	}
	return out.GUID, nil
}

// SaveCategory implements atlas.Client.
func (c *Client) SaveCategory(ctx context.Context, category *atlas.Category) (*atlas.Category, error) {
	var out atlas.Category
	if err := c.save(ctx, "save category", categoryPath, category.GUID, category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory implements atlas.Client.
func (c *Client) DeleteCategory(ctx context.Context, guid string) error {
	return c.delete(ctx, "delete category", categoryPath, guid)
}

// GetTerm implements atlas.Client.
func (c *Client) GetTerm(ctx context.Context, guid string) (*atlas.Term, error) {
	var out atlas.Term
	if err := c.get(ctx, "get term", termPath, guid, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTerm implements atlas.Client.
func (c *Client) CreateTerm(ctx context.Context, term *atlas.Term) (string, error) {
	var out atlas.Term
	if err := c.create(ctx, "create term", termPath, term, &out); err != nil {
		return "", err
	}
	return out.GUID, nil
}

// SaveTerm implements atlas.Client.
func (c *Client) SaveTerm(ctx context.Context, term *atlas.Term) (*atlas.Term, error) {
	var out atlas.Term
	if err := c.save(ctx, "save term", termPath, term.GUID, term, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTerm implements atlas.Client.
func (c *Client) DeleteTerm(ctx context.Context, guid string) error {
	return c.delete(ctx, "delete term", termPath, guid)
}

func (c *Client) get(ctx context.Context, op, base, guid string, out any) error {
	return c.transport.JSON(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodGet,
		Path:      base + "/" + url.PathEscape(guid),
	}, out)
}

func (c *Client) create(ctx context.Context, op, base string, in, out any) error {
	return c.transport.JSON(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodPost,
		Path:      base,
		Body:      in,
	}, out)
}

func (c *Client) save(ctx context.Context, op, base, guid string, in, out any) error {
	return c.transport.JSON(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodPut,
		Path:      base + "/" + url.PathEscape(guid),
		Body:      in,
	}, out)
}

func (c *Client) delete(ctx context.Context, op, base, guid string) error {
	return c.transport.JSON(ctx, transport.Request{
		Operation: op,
		Method:    http.MethodDelete,
		Path:      base + "/" + url.PathEscape(guid),
	}, nil)
}
