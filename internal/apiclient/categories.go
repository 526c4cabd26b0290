// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"fmt"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/models"
)

const categoriesPath = "/categories"

// ListCategories returns one page of categories.
func (c *Client) ListCategories(ctx context.Context, q models.Query) (*models.Page[models.Category], error) {
	var page models.Page[models.Category]
	if err := c.get(ctx, categoriesPath, q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &page, nil
}

// CategoryTree returns every category nested under its parent.
func (c *Client) CategoryTree(ctx context.Context) ([]models.Category, error) {
	var roots []models.Category
	if err := c.get(ctx, categoriesPath+"/tree", nil, &roots); err != nil {
		return nil, fmt.Errorf("get category tree: %w", err)
	}
	return roots, nil
}

// GetCategory returns one category. A 404 is reported as (nil, nil).
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := c.get(ctx, categoriesPath+"/"+escape(id), nil, &cat); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := c.post(ctx, categoriesPath, in, &cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory patches a category.
func (c *Client) UpdateCategory(ctx context.Context, id string, in models.UpdateCategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := c.patch(ctx, categoriesPath+"/"+escape(id), in, &cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &cat, nil
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, categoriesPath+"/"+escape(id)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// BulkUpdateOrder submits the complete parent/order assignment of the tree.
func (c *Client) BulkUpdateOrder(ctx context.Context, items []categorytree.OrderItem) (int, error) {
	body := struct {
		Items []categorytree.OrderItem `json:"items"`
	}{Items: items}
	if body.Items == nil {
		body.Items = []categorytree.OrderItem{}
	}

	var res models.BulkUpdateOrderResult
	if err := c.post(ctx, categoriesPath+"/bulk-update-order", body, &res); err != nil {
		return 0, fmt.Errorf("bulk update category order: %w", err)
	}
	return res.Updated, nil
}

// CategoryGateway adapts the client to the tree controller: it fetches the
// authoritative tree and submits reorder batches over the API.
type CategoryGateway struct {
	client *Client
}

// NewCategoryGateway wraps client.
func NewCategoryGateway(client *Client) *CategoryGateway {
	return &CategoryGateway{client: client}
}

// FetchTree implements categorytree.Fetcher.
func (g *CategoryGateway) FetchTree(ctx context.Context) (categorytree.Tree, error) {
	roots, err := g.client.CategoryTree(ctx)
	if err != nil {
		return categorytree.Tree{}, err
	}
	return TreeFromCategories(roots)
}

// SubmitOrder implements categorytree.Gateway.
func (g *CategoryGateway) SubmitOrder(ctx context.Context, items []categorytree.OrderItem) (int, error) {
	return g.client.BulkUpdateOrder(ctx, items)
}

// TreeFromCategories converts the nested API representation to a tree.
// Nesting decides parentage; sibling order follows the order field with
// gaps closed.
func TreeFromCategories(roots []models.Category) (categorytree.Tree, error) {
	var items []categorytree.OrderItem
	labels := make(map[string]categorytree.Label)

	var visit func(cats []models.Category, parent *string)
	visit = func(cats []models.Category, parent *string) {
		for _, cat := range cats {
			items = append(items, categorytree.OrderItem{ID: cat.ID, ParentID: parent, Order: cat.Order})
			labels[cat.ID] = categorytree.Label{Primary: cat.NameVI, Secondary: cat.NameEN}
			id := cat.ID
			visit(cat.Children, &id)
		}
	}
	visit(roots, nil)

	t, err := categorytree.BuildWithLabels(items, labels)
	if err != nil {
		return categorytree.Tree{}, fmt.Errorf("convert category tree: %w", err)
	}
	return t, nil
}
