package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	SQL *sql.DB
}

// Open opens (and creates if necessary) the SQLite database at path and
// applies the schema. The schema statements are idempotent, so Open is safe
// to call on every startup.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer at a time; the creation flow is strictly sequential anyway.
	sqlDB.SetMaxOpenConns(1)

	// Fail fast
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &DB{SQL: sqlDB}, nil
}

func (d *DB) Close() {
	if d != nil && d.SQL != nil {
		d.SQL.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    project_code     TEXT    NOT NULL UNIQUE,
    name             TEXT    NOT NULL,
    client           TEXT    NOT NULL,
    grp              TEXT    NOT NULL CHECK (grp IN ('left', 'right')),
    start_date       TEXT,
    end_date         TEXT,
    status           TEXT    NOT NULL DEFAULT 'draft'
                             CHECK (status IN ('draft', 'active', 'completed')),
    drive_folder_id  TEXT,
    drive_folder_url TEXT,
    vault_path       TEXT,
    created_at       TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    updated_at       TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status);
CREATE INDEX IF NOT EXISTS idx_projects_client ON projects (client);

CREATE TABLE IF NOT EXISTS methodologies (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    code                 TEXT    NOT NULL UNIQUE,
    name                 TEXT    NOT NULL,
    category             TEXT    NOT NULL CHECK (category IN ('БПМ', 'БПА')),
    description          TEXT,
    typical_effort_hours INTEGER,
    requires_details     INTEGER NOT NULL DEFAULT 0
);
`

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
