// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"fmt"

	"blogconsole/internal/models"
)

const usersPath = "/users"

// Me returns the account behind the bearer credential of ctx. The API
// creates the account on first sight.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, usersPath+"/me", nil, &u); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &u, nil
}

// ListUsers returns one page of users. Supported filters: role, is_verified.
func (c *Client) ListUsers(ctx context.Context, q models.Query) (*models.Page[models.User], error) {
	var page models.Page[models.User]
	if err := c.get(ctx, usersPath, q.Values(), &page); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &page, nil
}

// GetUser returns one user, or (nil, nil) when it does not exist.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, usersPath+"/"+escape(id), nil, &u); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error) {
	var u models.User
	if err := c.patch(ctx, usersPath+"/"+escape(id), in, &u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

// SyncUsers imports every identity-provider account into the blog database.
func (c *Client) SyncUsers(ctx context.Context) (*models.SyncResult, error) {
	var res models.SyncResult
	if err := c.post(ctx, usersPath+"/sync-firebase", nil, &res); err != nil {
		return nil, fmt.Errorf("sync users: %w", err)
	}
	return &res, nil
}
