// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"blogconsole/internal/categorytree"
)

const (
	// TreeKey is the Valkey key holding the confirmed category tree.
	TreeKey = "tree:categories"

	// DefaultTreeTTL is how long a fetched tree stays cached.
	DefaultTreeTTL = 5 * time.Minute
)

// TreeCache is a read-through cache in front of a categorytree.Fetcher.
// Cache failures are logged and fall through to the upstream fetcher.
type TreeCache struct {
	client   *redis.Client
	upstream categorytree.Fetcher
	ttl      time.Duration
}

// NewTreeCache caches the trees returned by upstream for ttl.
func NewTreeCache(client *redis.Client, upstream categorytree.Fetcher, ttl time.Duration) *TreeCache {
	if ttl <= 0 {
		ttl = DefaultTreeTTL
	}
	return &TreeCache{client: client, upstream: upstream, ttl: ttl}
}

// FetchTree implements categorytree.Fetcher.
func (tc *TreeCache) FetchTree(ctx context.Context) (categorytree.Tree, error) {
	if t, ok := tc.get(ctx); ok {
		return t, nil
	}

	t, err := tc.upstream.FetchTree(ctx)
	if err != nil {
		return categorytree.Tree{}, err
	}
	tc.set(ctx, t)
	return t, nil
}

// Invalidate drops the cached tree. The controller calls it after every
// reorder and before a reload.
func (tc *TreeCache) Invalidate(ctx context.Context) {
	if err := tc.client.Del(ctx, TreeKey).Err(); err != nil {
		slog.Warn("tree cache invalidate error", "error", err)
		return
	}
	slog.Debug("tree cache invalidated")
}

func (tc *TreeCache) get(ctx context.Context) (categorytree.Tree, bool) {
	val, err := tc.client.Get(ctx, TreeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return categorytree.Tree{}, false
	}
	if err != nil {
		slog.Warn("tree cache get error", "error", err)
		return categorytree.Tree{}, false
	}

	var t categorytree.Tree
	if err := json.Unmarshal(val, &t); err != nil {
		slog.Warn("tree cache decode error", "error", err)
		return categorytree.Tree{}, false
	}
	if err := categorytree.Validate(t); err != nil {
		slog.Warn("tree cache holds a malformed tree", "error", err)
		return categorytree.Tree{}, false
	}

	slog.Debug("tree cache hit", "nodes", t.Len())
	return t, true
}

func (tc *TreeCache) set(ctx context.Context, t categorytree.Tree) {
	payload, err := json.Marshal(t)
	if err != nil {
		slog.Warn("tree cache encode error", "error", err)
		return
	}
	if err := tc.client.Set(ctx, TreeKey, payload, tc.ttl).Err(); err != nil {
		slog.Warn("tree cache set error", "error", err)
	}
}
