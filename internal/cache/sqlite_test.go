package cache

import (
	"testing"

	"rentdesk/internal/model"
)

func TestSQLiteRoundTripAndInvalidate(t *testing.T) {
	t.Parallel()

	s, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	key := DetailKey(model.ResourceProperties, "prop-9")
	if _, ok := s.Get(key); ok {
		t.Fatal("unexpected hit on empty store")
	}
	s.Set(key, []byte(`{"id":"prop-9"}`))
	v, ok := s.Get(key)
	if !ok || string(v) != `{"id":"prop-9"}` {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if _, ok := s.StoredAt(key); !ok {
		t.Fatal("expected stored_at for written key")
	}

	s.Set(ListKey(model.ResourceProperties, "page=1"), []byte("x"))
	InvalidateEntity(s, model.ResourceProperties, "prop-9")
	if _, ok := s.Get(key); ok {
		t.Fatal("detail should be gone after invalidation")
	}
	if _, ok := s.Get(ListKey(model.ResourceProperties, "page=1")); ok {
		t.Fatal("list snapshot should be gone after invalidation")
	}
}

func TestSQLiteReopenKeepsSnapshots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("list:properties:page=1", []byte("persisted"))
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	v, ok := s2.Get("list:properties:page=1")
	if !ok || string(v) != "persisted" {
		t.Fatalf("expected snapshot to survive reopen, got %q, %v", v, ok)
	}
}
