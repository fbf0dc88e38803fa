package egeriaclient

import (
	"context"
	"net/url"

	"github.com/agentstation/glossync/pkg/egeria"
)

func categoryPath(guid string) string {
	return "/glossaries/categories/" + url.PathEscape(guid)
}

// GetCategoriesForGlossary implements egeria.CategoryExchange.
func (c *Client) GetCategoriesForGlossary(ctx context.Context, glossaryGUID string, startFrom, pageSize int) ([]*egeria.CategoryElement, error) {
	return elements[egeria.CategoryElement](ctx, c, post("get categories for glossary",
		"/glossaries/"+url.PathEscape(glossaryGUID)+"/categories/retrieve", paging(startFrom, pageSize), nil))
}

// GetCategoryByGUID implements egeria.CategoryExchange.
func (c *Client) GetCategoryByGUID(ctx context.Context, guid string) (*egeria.CategoryElement, error) {
	return element[egeria.CategoryElement](ctx, c, post("get category", categoryPath(guid)+"/retrieve", nil, nil), guid)
}

// CreateCategory implements egeria.CategoryExchange.
func (c *Client) CreateCategory(ctx context.Context, glossaryGUID string, props egeria.CategoryProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	return created(ctx, c, post("create category", "/glossaries/"+url.PathEscape(glossaryGUID)+"/categories", nil,
		elementRequest{Properties: props, Correlation: correlation}))
}

// UpdateCategory implements egeria.CategoryExchange.
func (c *Client) UpdateCategory(ctx context.Context, guid string, props egeria.CategoryProperties) error {
	return void(ctx, c, post("update category", categoryPath(guid)+"/update",
		url.Values{"isMergeUpdate": {"false"}}, elementRequest{Properties: props}))
}

// GetCategoryParent implements egeria.CategoryExchange.
func (c *Client) GetCategoryParent(ctx context.Context, categoryGUID string) (*egeria.CategoryElement, error) {
	resp, err := call[egeria.CategoryElement](ctx, c, post("get category parent", categoryPath(categoryGUID)+"/parent/retrieve", nil, nil))
	if err != nil {
		return nil, err
	}
	return resp.Element, nil
}

// SetupCategoryParent implements egeria.CategoryExchange.
func (c *Client) SetupCategoryParent(ctx context.Context, parentGUID, childGUID string) error {
	return void(ctx, c, post("setup category parent",
		categoryPath(parentGUID)+"/subcategories/"+url.PathEscape(childGUID), nil, nil))
}

// ClearCategoryParent implements egeria.CategoryExchange.
func (c *Client) ClearCategoryParent(ctx context.Context, parentGUID, childGUID string) error {
	return void(ctx, c, post("clear category parent",
		categoryPath(parentGUID)+"/subcategories/"+url.PathEscape(childGUID)+"/remove", nil, nil))
}

// GetGlossaryForCategory implements egeria.CategoryExchange.
func (c *Client) GetGlossaryForCategory(ctx context.Context, categoryGUID string) (*egeria.GlossaryElement, error) {
	return element[egeria.GlossaryElement](ctx, c, post("get glossary for category",
		"/glossaries/for-category/"+url.PathEscape(categoryGUID)+"/retrieve", nil, nil), categoryGUID)
}
