// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"fmt"

	"blogconsole/internal/models"
)

const commentsPath = "/comments"

// ListComments returns one page of comments. Supported filters: post_id, status.
func (c *Client) ListComments(ctx context.Context, q models.Query) (*models.Page[models.Comment], error) {
	var page models.Page[models.Comment]
	if err := c.get(ctx, commentsPath, q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &page, nil
}

// SetCommentStatus approves, rejects or re-queues a comment.
func (c *Client) SetCommentStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	body := struct {
		Status models.CommentStatus `json:"status"`
	}{Status: status}

	var cm models.Comment
	if err := c.patch(ctx, commentsPath+"/"+escape(id), body, &cm); err != nil {
		return nil, fmt.Errorf("update comment status: %w", err)
	}
	return &cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	if err := c.delete(ctx, commentsPath+"/"+escape(id)); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
