package egeriaclient

import (
	"context"
	"net/url"

	"github.com/agentstation/glossync/pkg/egeria"
)

func termPath(guid string) string {
	return "/glossaries/terms/" + url.PathEscape(guid)
}

// GetTermsForGlossary implements egeria.TermExchange.
func (c *Client) GetTermsForGlossary(ctx context.Context, glossaryGUID string, startFrom, pageSize int) ([]*egeria.TermElement, error) {
	return elements[egeria.TermElement](ctx, c, post("get terms for glossary",
		"/glossaries/"+url.PathEscape(glossaryGUID)+"/terms/retrieve", paging(startFrom, pageSize), nil))
}

// GetTermByGUID implements egeria.TermExchange.
func (c *Client) GetTermByGUID(ctx context.Context, guid string) (*egeria.TermElement, error) {
	return element[egeria.TermElement](ctx, c, post("get term", termPath(guid)+"/retrieve", nil, nil), guid)
}

// CreateTerm implements egeria.TermExchange.
func (c *Client) CreateTerm(ctx context.Context, glossaryGUID string, props egeria.TermProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	return created(ctx, c, post("create term", "/glossaries/"+url.PathEscape(glossaryGUID)+"/terms", nil,
		elementRequest{Properties: props, Correlation: correlation}))
}

// UpdateTerm implements egeria.TermExchange.
func (c *Client) UpdateTerm(ctx context.Context, guid string, props egeria.TermProperties) error {
	return void(ctx, c, post("update term", termPath(guid)+"/update",
		url.Values{"isMergeUpdate": {"false"}}, elementRequest{Properties: props}))
}

// GetCategoriesForTerm implements egeria.TermExchange.
func (c *Client) GetCategoriesForTerm(ctx context.Context, termGUID string, startFrom, pageSize int) ([]*egeria.CategoryElement, error) {
	return elements[egeria.CategoryElement](ctx, c, post("get categories for term",
		termPath(termGUID)+"/categories/retrieve", paging(startFrom, pageSize), nil))
}

// SetupTermCategory implements egeria.TermExchange.
func (c *Client) SetupTermCategory(ctx context.Context, categoryGUID, termGUID string) error {
	return void(ctx, c, post("setup term category",
		categoryPath(categoryGUID)+"/terms/"+url.PathEscape(termGUID), nil, nil))
}

// ClearTermCategory implements egeria.TermExchange.
func (c *Client) ClearTermCategory(ctx context.Context, categoryGUID, termGUID string) error {
	return void(ctx, c, post("clear term category",
		categoryPath(categoryGUID)+"/terms/"+url.PathEscape(termGUID)+"/remove", nil, nil))
}

// GetGlossaryForTerm implements egeria.TermExchange.
func (c *Client) GetGlossaryForTerm(ctx context.Context, termGUID string) (*egeria.GlossaryElement, error) {
	return element[egeria.GlossaryElement](ctx, c, post("get glossary for term",
		"/glossaries/for-term/"+url.PathEscape(termGUID)+"/retrieve", nil, nil), termGUID)
}
