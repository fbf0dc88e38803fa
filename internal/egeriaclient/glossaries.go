package egeriaclient

import (
	"context"
	"net/url"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
)

type searchRequest struct {
	SearchString string `json:"searchString,omitempty"`
	Name         string `json:"name,omitempty"`
}

// ListGlossaries implements egeria.GlossaryExchange.
func (c *Client) ListGlossaries(ctx context.Context, startFrom, pageSize int) ([]*egeria.GlossaryElement, error) {
	return elements[egeria.GlossaryElement](ctx, c, post("list glossaries",
		"/glossaries/by-search-string", paging(startFrom, pageSize), searchRequest{SearchString: ".*"}))
}

// GetGlossaryByGUID implements egeria.GlossaryExchange.
func (c *Client) GetGlossaryByGUID(ctx context.Context, guid string) (*egeria.GlossaryElement, error) {
	return element[egeria.GlossaryElement](ctx, c, post("get glossary",
		"/glossaries/"+url.PathEscape(guid)+"/retrieve", nil, nil), guid)
}

// GetGlossaryByName implements egeria.GlossaryExchange. The service matches
// names loosely, so only an exact qualified name match is accepted.
func (c *Client) GetGlossaryByName(ctx context.Context, qualifiedName string) (*egeria.GlossaryElement, error) {
	const op = "get glossary by name"
	for start := 0; ; start += c.maxPageSize {
		page, err := elements[egeria.GlossaryElement](ctx, c, post(op,
			"/glossaries/by-name", paging(start, c.maxPageSize), searchRequest{Name: qualifiedName}))
		if err != nil {
			return nil, err
		}
		for _, g := range page {
			if g.Properties.QualifiedName == qualifiedName {
				return g, nil
			}
		}
		if len(page) < c.maxPageSize {
			return nil, errors.NewServiceError(service, op, errors.KindNotFound, "no glossary named "+qualifiedName, nil)
		}
	}
}

// CreateGlossary implements egeria.GlossaryExchange.
func (c *Client) CreateGlossary(ctx context.Context, props egeria.GlossaryProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	return created(ctx, c, post("create glossary", "/glossaries", nil,
		elementRequest{Properties: props, Correlation: correlation}))
}

// UpdateGlossary implements egeria.GlossaryExchange.
func (c *Client) UpdateGlossary(ctx context.Context, guid string, props egeria.GlossaryProperties) error {
	return void(ctx, c, post("update glossary", "/glossaries/"+url.PathEscape(guid)+"/update",
		url.Values{"isMergeUpdate": {"false"}}, elementRequest{Properties: props}))
}
