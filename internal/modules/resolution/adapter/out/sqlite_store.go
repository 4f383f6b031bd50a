package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// NewSQLiteRepository opens (or creates) the database at dbPath and makes
// sure the schema exists.
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; transactions would otherwise hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLRepository(db, PlaceholderQuestion), nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS resolutions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  target REAL NOT NULL,
  current_amount REAL NOT NULL DEFAULT 0,
  unit TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  deadline INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS resolutions_user_idx ON resolutions (user_id, created_at);
CREATE TABLE IF NOT EXISTS progress_entries (
  id TEXT PRIMARY KEY,
  resolution_id TEXT NOT NULL REFERENCES resolutions (id),
  amount REAL NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  logged_at INTEGER NOT NULL,
  seq INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS progress_entries_resolution_seq_idx ON progress_entries (resolution_id, seq);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create resolution tables: %w", err)
	}
	return nil
}
