// Package cache is the invalidate-and-refetch layer that keeps the paginated
// list views and single-entity detail views consistent after a write. The
// coordinator talks to the Store interface only, so tests can swap in a
// double.
package cache

import (
	"strings"
	"sync"

	"rentdesk/internal/model"
)

// Store is a byte cache keyed by the scheme below. Implementations must be
// safe for concurrent use; last-writer-wins per key is acceptable because
// list and detail keys are disjoint.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, val []byte)
	Invalidate(key string)
	InvalidatePrefix(prefix string)
}

// ListKey caches one page of a collection under its canonical filter
// encoding.
func ListKey(resource model.Resource, filterKey string) string {
	return "list:" + string(resource) + ":" + filterKey
}

// DetailKey caches a single entity.
func DetailKey(resource model.Resource, id string) string {
	return "detail:" + string(resource) + ":" + id
}

func listPrefix(resource model.Resource) string {
	return "list:" + string(resource) + ":"
}

// InvalidateCollection drops every cached list page of a collection. Used
// for manual refresh; mutation-driven invalidation goes through
// InvalidateEntity.
func InvalidateCollection(s Store, resource model.Resource) {
	s.InvalidatePrefix(listPrefix(resource))
}

// InvalidateEntity drops the entity's detail entry and every cached list
// page of its collection. Called only after a confirmed mutation success;
// the next read of either view refetches from the server.
func InvalidateEntity(s Store, resource model.Resource, id string) {
	s.Invalidate(DetailKey(resource, id))
	s.InvalidatePrefix(listPrefix(resource))
}

// Memory is the in-process store used by a running console.
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	if !ok {
		return nil, false
	}
	// Copy so callers can't alias cache-owned bytes.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (c *Memory) Set(key string, val []byte) {
	cp := make([]byte, len(val))
	copy(cp, val)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cp
}

func (c *Memory) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *Memory) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
}
