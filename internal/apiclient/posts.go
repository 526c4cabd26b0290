// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"fmt"

	"blogconsole/internal/models"
)

const postsPath = "/posts"

// ListPosts returns one page of posts. Supported filters: status, category_id.
func (c *Client) ListPosts(ctx context.Context, q models.Query) (*models.Page[models.Post], error) {
	var page models.Page[models.Post]
	if err := c.get(ctx, postsPath, q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &page, nil
}

// GetPost returns one post, or (nil, nil) when it does not exist.
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := c.get(ctx, postsPath+"/"+escape(id), nil, &p); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var p models.Post
	if err := c.post(ctx, postsPath, in, &p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &p, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, in models.PostInput) (*models.Post, error) {
	var p models.Post
	if err := c.patch(ctx, postsPath+"/"+escape(id), in, &p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := c.delete(ctx, postsPath+"/"+escape(id)); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
