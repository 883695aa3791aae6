package cache

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists snapshots across runs so CLI commands can serve a recent
// read when the marketplace service is unreachable, and so the console can
// warm-start. It implements Store; write errors are swallowed after logging
// because a broken snapshot file must never fail a live request.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates) the snapshot database at dir/snapshots.sqlite.
func OpenSQLite(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, "snapshots.sqlite"))
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	// WAL enables one writer + many readers; busy_timeout avoids "database
	// is locked" flakiness when a CLI command runs next to an open console.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		val BLOB NOT NULL,
		stored_at TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Get(key string) ([]byte, bool) {
	var val []byte
	err := s.db.QueryRow(`SELECT val FROM snapshots WHERE key = ?`, key).Scan(&val)
	if err != nil {
		return nil, false
	}
	return val, true
}

// StoredAt reports when a snapshot was written, for "data as of ..." labels.
func (s *SQLite) StoredAt(key string) (time.Time, bool) {
	var raw string
	if err := s.db.QueryRow(`SELECT stored_at FROM snapshots WHERE key = ?`, key).Scan(&raw); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *SQLite) Set(key string, val []byte) {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO snapshots(key, val, stored_at) VALUES(?, ?, ?)`,
		key, val, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		log.Printf("cache: write snapshot %s: %v", key, err)
	}
}

func (s *SQLite) Invalidate(key string) {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		log.Printf("cache: invalidate %s: %v", key, err)
	}
}

func (s *SQLite) InvalidatePrefix(prefix string) {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key LIKE ? || '%'`, prefix); err != nil {
		log.Printf("cache: invalidate prefix %s: %v", prefix, err)
	}
}
