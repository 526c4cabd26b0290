// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"fmt"

	"blogconsole/internal/models"
)

const tagsPath = "/tags"

func (c *Client) ListTags(ctx context.Context, q models.Query) (*models.Page[models.Tag], error) {
	var page models.Page[models.Tag]
	if err := c.get(ctx, tagsPath, q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return &page, nil
}

// GetTag returns one tag, or (nil, nil) when it does not exist.
func (c *Client) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := c.get(ctx, tagsPath+"/"+escape(id), nil, &tag); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

func (c *Client) CreateTag(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := c.post(ctx, tagsPath, in, &tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, id string, in models.TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := c.patch(ctx, tagsPath+"/"+escape(id), in, &tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	if err := c.delete(ctx, tagsPath+"/"+escape(id)); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
