// Package history keeps a local audit trail of deployment runs.
//
// Every invocation appends one row with its mode and outcome to a SQLite
// database under the tool's data directory. The trail is strictly
// best-effort: history failures are logged and never change the exit code
// of a deployment.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Outcomes recorded for a run.
const (
	OutcomeSuccess          = "success"
	OutcomeAlreadyInstalled = "already-installed"
	OutcomeFailed           = "failed"
)

// Entry is one recorded deployment run.
type Entry struct {
	ID               int64
	Timestamp        time.Time
	Hostname         string
	MaskedAccountKey string
	OrganizationKey  string
	Mode             string // "install", "reinstall", or "reregister"
	Outcome          string
	Error            string
}

// Trail is the SQLite-backed deployment log.
type Trail struct {
	db *sql.DB
}

// Open creates (if needed) and opens the trail database under dataDir.
func Open(dataDir string) (*Trail, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "deploy_history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS deployments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			hostname TEXT NOT NULL,
			account_key TEXT NOT NULL,
			organization_key TEXT NOT NULL,
			mode TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create deployments table: %w", err)
	}

	return &Trail{db: db}, nil
}

// Record appends one run to the trail. The caller passes the account key
// already masked; the full key is never persisted.
func (t *Trail) Record(e Entry) error {
	_, err := t.db.Exec(
		`INSERT INTO deployments (hostname, account_key, organization_key, mode, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Hostname, e.MaskedAccountKey, e.OrganizationKey, e.Mode, e.Outcome, e.Error,
	)
	if err != nil {
		return fmt.Errorf("record deployment: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (t *Trail) Recent(limit int) ([]Entry, error) {
	rows, err := t.db.Query(
		`SELECT id, timestamp, hostname, account_key, organization_key, mode, outcome, error
		 FROM deployments ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query deployments: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Hostname, &e.MaskedAccountKey,
			&e.OrganizationKey, &e.Mode, &e.Outcome, &e.Error); err != nil {
			return nil, fmt.Errorf("scan deployment row: %w", err)
		}
		if parsed, perr := time.Parse("2006-01-02 15:04:05", ts); perr == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded runs.
func (t *Trail) Count() (int, error) {
	var n int
	if err := t.db.QueryRow(`SELECT COUNT(*) FROM deployments`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database.
func (t *Trail) Close() error {
	return t.db.Close()
}
