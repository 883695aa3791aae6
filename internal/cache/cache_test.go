package cache

import (
	"testing"

	"rentdesk/internal/model"
)

func TestMemoryGetCopies(t *testing.T) {
	t.Parallel()

	c := NewMemory()
	c.Set("k", []byte("abc"))
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	v[0] = 'X'
	v2, _ := c.Get("k")
	if string(v2) != "abc" {
		t.Fatalf("cached value mutated through returned slice: %q", v2)
	}
}

func TestInvalidateEntityDropsDetailAndLists(t *testing.T) {
	t.Parallel()

	c := NewMemory()
	c.Set(ListKey(model.ResourceProperties, "page=1"), []byte("p1"))
	c.Set(ListKey(model.ResourceProperties, "page=2"), []byte("p2"))
	c.Set(DetailKey(model.ResourceProperties, "prop-1"), []byte("d"))
	c.Set(DetailKey(model.ResourceProperties, "prop-2"), []byte("d2"))
	c.Set(ListKey(model.ResourceUsers, "page=1"), []byte("u"))

	InvalidateEntity(c, model.ResourceProperties, "prop-1")

	if _, ok := c.Get(DetailKey(model.ResourceProperties, "prop-1")); ok {
		t.Fatal("detail entry should be invalidated")
	}
	if _, ok := c.Get(ListKey(model.ResourceProperties, "page=1")); ok {
		t.Fatal("list page 1 should be invalidated")
	}
	if _, ok := c.Get(ListKey(model.ResourceProperties, "page=2")); ok {
		t.Fatal("list page 2 should be invalidated")
	}
	// Other entities' details and other collections stay cached.
	if _, ok := c.Get(DetailKey(model.ResourceProperties, "prop-2")); !ok {
		t.Fatal("unrelated detail should survive")
	}
	if _, ok := c.Get(ListKey(model.ResourceUsers, "page=1")); !ok {
		t.Fatal("other collection's list should survive")
	}
}
