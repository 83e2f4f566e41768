// Package audit keeps a SQLite-backed trail of handled operations. Only
// request telemetry is recorded; search results are never stored.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded operation.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	Op         string
	Argument   string
	Success    bool
	Detail     string
	DurationMS int64
}

// Trail is an append-only operations log.
type Trail struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	op TEXT NOT NULL,
	argument TEXT,
	success BOOLEAN NOT NULL,
	detail TEXT,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_op ON audit_log(op);
`

// Open opens (creating if needed) the trail database at path.
func Open(path string) (*Trail, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create audit directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	return &Trail{db: db}, nil
}

// Close closes the underlying database.
func (t *Trail) Close() error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Close()
}

// Log appends one operation record. A nil Trail is a no-op so callers can
// leave auditing disabled without branching.
func (t *Trail) Log(op, argument string, success bool, detail string, dur time.Duration) error {
	if t == nil || t.db == nil {
		return nil
	}
	_, err := t.db.Exec(`
		INSERT INTO audit_log (op, argument, success, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?)`,
		op, argument, success, detail, dur.Milliseconds())
	return err
}

// Recent returns up to limit entries, newest first.
func (t *Trail) Recent(limit int) ([]Entry, error) {
	if t == nil || t.db == nil {
		return nil, nil
	}
	rows, err := t.db.Query(`
		SELECT id, timestamp, op, argument, success, detail, duration_ms
		FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Op, &e.Argument, &e.Success, &e.Detail, &e.DurationMS); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
