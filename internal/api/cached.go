package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rentdesk/internal/cache"
	"rentdesk/internal/model"
)

// ErrNotCached is returned by offline reads with no usable snapshot.
var ErrNotCached = errors.New("no cached snapshot")

// Page is one decoded page of a collection, with the server's pagination
// meta when it sent one and a local approximation otherwise.
type Page[T any] struct {
	Items []T                  `json:"items"`
	Meta  model.PaginationMeta `json:"meta"`
}

// CachedClient reads through the cache store: a hit is served as-is, a miss
// goes to the service and the result is written back. Mutations invalidate
// through the same store (see mutate.Coordinator), which is the sole
// consistency mechanism; cached entities are never patched in place.
type CachedClient struct {
	Client *Client
	Cache  cache.Store

	// Offline serves reads from snapshots only (CLI --cached). A miss is
	// ErrNotCached instead of a network call.
	Offline bool
}

func (c *CachedClient) ListProperties(ctx context.Context, filter ListFilter) (*Page[model.Property], error) {
	return listVia[model.Property](ctx, c, model.ResourceProperties, filter)
}

func (c *CachedClient) ListSubscriptions(ctx context.Context, filter ListFilter) (*Page[model.Subscription], error) {
	return listVia[model.Subscription](ctx, c, model.ResourceSubscriptions, filter)
}

func (c *CachedClient) ListUsers(ctx context.Context, filter ListFilter) (*Page[model.User], error) {
	return listVia[model.User](ctx, c, model.ResourceUsers, filter)
}

func (c *CachedClient) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	return getVia[model.Property](ctx, c, model.ResourceProperties, id)
}

func (c *CachedClient) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	return getVia[model.Subscription](ctx, c, model.ResourceSubscriptions, id)
}

func (c *CachedClient) GetUser(ctx context.Context, id string) (*model.User, error) {
	return getVia[model.User](ctx, c, model.ResourceUsers, id)
}

func listVia[T any](ctx context.Context, c *CachedClient, resource model.Resource, filter ListFilter) (*Page[T], error) {
	key := cache.ListKey(resource, filter.CacheKeyPart())
	if b, ok := c.Cache.Get(key); ok {
		var page Page[T]
		if err := json.Unmarshal(b, &page); err == nil {
			return &page, nil
		}
		// Corrupt snapshot: fall through to a fresh fetch.
		c.Cache.Invalidate(key)
	}
	if c.Offline {
		return nil, fmt.Errorf("%s %s: %w", resource, filter.CacheKeyPart(), ErrNotCached)
	}

	resp, err := c.Client.List(ctx, resource, filter)
	if err != nil {
		return nil, err
	}
	items, err := DecodeItems[T](resp.Items)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if resp.Pagination != nil {
		page.Meta = *resp.Pagination
	} else {
		page.Meta = model.ApproxMeta(len(items), filter.Page(), filter.PageSize())
	}
	if b, err := json.Marshal(page); err == nil {
		c.Cache.Set(key, b)
	}
	return page, nil
}

func getVia[T any](ctx context.Context, c *CachedClient, resource model.Resource, id string) (*T, error) {
	key := cache.DetailKey(resource, id)
	if b, ok := c.Cache.Get(key); ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return &v, nil
		}
		c.Cache.Invalidate(key)
	}
	if c.Offline {
		return nil, fmt.Errorf("%s/%s: %w", resource, id, ErrNotCached)
	}

	raw, err := c.Client.Get(ctx, resource, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", resource, id, err)
	}
	c.Cache.Set(key, raw)
	return &v, nil
}
