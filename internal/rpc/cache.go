package rpc

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache persists solved-constraint snapshots keyed by request ID, so a
// retried SolveRequest with the same correlation ID (see Server.Solve)
// returns the previously computed bound instead of re-running the
// unifier. Backed by modernc.org/sqlite, a pure-Go sqlite driver, used
// here for its intended purpose as an embedded cache.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and if necessary creates) the snapshot cache at
// path. Pass ":memory:" for an ephemeral cache, the mode cmd/vinecd
// uses by default.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("rpc: opening cache: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS solved (
	request_id TEXT PRIMARY KEY,
	rendered   TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("rpc: creating schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Lookup returns the cached rendering for requestID, if any.
func (c *Cache) Lookup(ctx context.Context, requestID string) (string, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT rendered FROM solved WHERE request_id = ?`, requestID)
	var rendered string
	switch err := row.Scan(&rendered); err {
	case nil:
		return rendered, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("rpc: cache lookup: %w", err)
	}
}

// Store records the rendering produced for requestID, overwriting any
// prior entry (a retried request with the same ID always reflects the
// most recent solve).
func (c *Cache) Store(ctx context.Context, requestID, rendered string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO solved(request_id, rendered) VALUES (?, ?)
		 ON CONFLICT(request_id) DO UPDATE SET rendered = excluded.rendered`,
		requestID, rendered)
	if err != nil {
		return fmt.Errorf("rpc: cache store: %w", err)
	}
	return nil
}
