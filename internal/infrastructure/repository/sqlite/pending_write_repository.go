// Package sqlite holds the device-local durable queue. Unlike the postgres
// repositories this store belongs to one running client: it keeps score edits
// across process restarts until the authoritative store confirms them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marcusta/golf-serie-sub009/internal/domain/pendingwrite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_scores (
    participant_id INTEGER NOT NULL,
    hole           INTEGER NOT NULL,
    shots          INTEGER NOT NULL,
    queued_at      INTEGER NOT NULL,
    attempts       INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (participant_id, hole)
);
`

type PendingWriteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or reopens the queue file. Pass ":memory:" for an ephemeral
// queue in tests.
func Open(path string) (*PendingWriteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open pending-write db: %w", err)
	}
	// One writer at a time keeps sqlite's locking out of the picture; the
	// queue is only touched from one client process anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create pending_scores table: %w", err)
	}
	return &PendingWriteRepository{db: db, now: time.Now}, nil
}

func (r *PendingWriteRepository) Close() error {
	return r.db.Close()
}

// WithClock overrides the queue clock; tests use it to age entries.
func (r *PendingWriteRepository) WithClock(now func() time.Time) *PendingWriteRepository {
	r.now = now
	return r
}

func (r *PendingWriteRepository) Add(ctx context.Context, participantID, hole, shots int) error {
	const query = `
INSERT INTO pending_scores (participant_id, hole, shots, queued_at, attempts)
VALUES (?, ?, ?, ?, 0)
ON CONFLICT (participant_id, hole)
DO UPDATE SET shots = excluded.shots, queued_at = excluded.queued_at, attempts = 0`

	if _, err := r.db.ExecContext(ctx, query, participantID, hole, shots, r.now().UnixMilli()); err != nil {
		return fmt.Errorf("add pending write: %w", err)
	}
	return nil
}

func (r *PendingWriteRepository) Remove(ctx context.Context, participantID, hole int) error {
	const query = `DELETE FROM pending_scores WHERE participant_id = ? AND hole = ?`
	if _, err := r.db.ExecContext(ctx, query, participantID, hole); err != nil {
		return fmt.Errorf("remove pending write: %w", err)
	}
	return nil
}

func (r *PendingWriteRepository) MarkAttempted(ctx context.Context, participantID, hole int) (bool, error) {
	const update = `
UPDATE pending_scores SET attempts = attempts + 1
WHERE participant_id = ? AND hole = ?
RETURNING attempts`

	var attempts int
	err := r.db.QueryRowContext(ctx, update, participantID, hole).Scan(&attempts)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mark pending write attempted: %w", err)
	}

	if attempts >= pendingwrite.MaxAttempts {
		if err := r.Remove(ctx, participantID, hole); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *PendingWriteRepository) Retryable(ctx context.Context) ([]pendingwrite.Write, error) {
	const query = `
SELECT participant_id, hole, shots, queued_at, attempts
FROM pending_scores
WHERE attempts < ?
ORDER BY queued_at, participant_id, hole`

	rows, err := r.db.QueryContext(ctx, query, pendingwrite.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("list retryable pending writes: %w", err)
	}
	defer rows.Close()

	out := make([]pendingwrite.Write, 0)
	for rows.Next() {
		var w pendingwrite.Write
		var queuedAt int64
		if err := rows.Scan(&w.ParticipantID, &w.Hole, &w.Shots, &queuedAt, &w.Attempts); err != nil {
			return nil, fmt.Errorf("scan pending write: %w", err)
		}
		w.QueuedAt = time.UnixMilli(queuedAt)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending writes: %w", err)
	}
	return out, nil
}

func (r *PendingWriteRepository) OldestQueuedAt(ctx context.Context) (time.Time, bool, error) {
	const query = `SELECT MIN(queued_at) FROM pending_scores`

	var queuedAt sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query).Scan(&queuedAt); err != nil {
		return time.Time{}, false, fmt.Errorf("get oldest pending write: %w", err)
	}
	if !queuedAt.Valid {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(queuedAt.Int64), true, nil
}
