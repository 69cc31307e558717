package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Space profiles. restriction is an opaque JSON blob the engine passes
-- through to the gateway; assigned_users is NULL when the space has no
-- roster, a JSON array otherwise.
CREATE TABLE IF NOT EXISTS spaces (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    restriction TEXT NOT NULL DEFAULT '{}',
    icon TEXT NOT NULL DEFAULT '',
    assigned_users TEXT,
    users_choose_own_restriction INTEGER NOT NULL DEFAULT 0,
    tag_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_space_tag ON spaces(tag_id);

-- Attendance intervals. end_time stays NULL while a session is open.
CREATE TABLE IF NOT EXISTS attendance_intervals (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    space_name TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    task_category TEXT CHECK(task_category IS NULL OR task_category IN
        ('math', 'science', 'english', 'history', 'art', 'music', 'other'))
);
CREATE INDEX IF NOT EXISTS idx_interval_user ON attendance_intervals(username);
CREATE INDEX IF NOT EXISTS idx_interval_pair ON attendance_intervals(username, space_name);

-- One open interval per (username, space_name) pair. The engine checks
-- before inserting; this index closes the race.
CREATE UNIQUE INDEX IF NOT EXISTS idx_open_interval
    ON attendance_intervals(username, space_name) WHERE end_time IS NULL;

-- Fixed credential tables, seeded from config at startup.
CREATE TABLE IF NOT EXISTS credentials (
    username TEXT NOT NULL,
    password TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('moderator', 'student')),
    PRIMARY KEY (username, role)
);

-- Small key/value settings, e.g. the current space selection.
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
