// Package ledger records every probe outcome in an embedded SQLite database.
package ledger

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS checks (
	username    TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	http_status INTEGER NOT NULL DEFAULT 0,
	attempts    INTEGER NOT NULL DEFAULT 1,
	latency_ms  INTEGER NOT NULL DEFAULT 0,
	checked_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_status ON checks(status);
`

type SQLite struct {
	conn *sql.DB
}

// Open opens (or creates) the ledger database and applies the schema.
// Use ":memory:" in tests.
func Open(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.OpError{Op: "ledger.open", Kind: domain.KindStorage, Path: path, Err: err}
	}
	// One connection: the tool is the only writer and this sidesteps
	// SQLITE_BUSY under concurrent workers.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, &domain.OpError{Op: "ledger.ping", Kind: domain.KindStorage, Path: path, Err: err}
	}

	// WAL keeps reads cheap while workers write concurrently.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, &domain.OpError{Op: "ledger.pragma", Kind: domain.KindStorage, Path: path, Err: err}
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, &domain.OpError{Op: "ledger.migrate", Kind: domain.KindStorage, Path: path, Err: err}
	}

	return &SQLite{conn: conn}, nil
}

var _ ports.Ledger = (*SQLite)(nil)

// Record upserts the latest outcome for a candidate. Re-probed candidates
// (retries after a blocked pause, resumed runs) keep a single row.
func (l *SQLite) Record(ctx context.Context, res domain.CheckResult) error {
	_, err := l.conn.ExecContext(ctx,
		`INSERT INTO checks (username, status, http_status, attempts, latency_ms, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
			status = excluded.status,
			http_status = excluded.http_status,
			attempts = excluded.attempts,
			latency_ms = excluded.latency_ms,
			checked_at = excluded.checked_at`,
		res.Candidate,
		string(res.Status),
		res.HTTPStatus,
		res.Attempts,
		res.Latency.Milliseconds(),
		time.Now().UTC(),
	)
	if err != nil {
		return &domain.OpError{Op: "ledger.record", Kind: domain.KindStorage, Err: err}
	}
	return nil
}

func (l *SQLite) Stats(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := l.conn.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM checks GROUP BY status`)
	if err != nil {
		return nil, &domain.OpError{Op: "ledger.stats", Kind: domain.KindStorage, Err: err}
	}
	defer rows.Close()

	out := map[domain.Status]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, &domain.OpError{Op: "ledger.stats", Kind: domain.KindStorage, Err: err}
		}
		out[domain.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.OpError{Op: "ledger.stats", Kind: domain.KindStorage, Err: err}
	}
	return out, nil
}

func (l *SQLite) RecentAvailable(ctx context.Context, limit int) ([]string, error) {
	rows, err := l.conn.QueryContext(ctx,
		`SELECT username FROM checks WHERE status = ? ORDER BY checked_at DESC LIMIT ?`,
		string(domain.StatusAvailable), limit)
	if err != nil {
		return nil, &domain.OpError{Op: "ledger.recent_available", Kind: domain.KindStorage, Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &domain.OpError{Op: "ledger.recent_available", Kind: domain.KindStorage, Err: err}
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.OpError{Op: "ledger.recent_available", Kind: domain.KindStorage, Err: err}
	}
	return out, nil
}

func (l *SQLite) Close() error {
	return l.conn.Close()
}
