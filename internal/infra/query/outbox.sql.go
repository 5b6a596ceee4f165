package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOutboxEvent = `
INSERT INTO outbox (id, event_type, aggregate_id, payload, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'new', $5, $5)`

type InsertOutboxEventParams struct {
	ID          uuid.UUID
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error {
	_, err := db.Exec(ctx, insertOutboxEvent, arg.ID, arg.EventType, arg.AggregateID, arg.Payload, arg.CreatedAt)
	return err
}

// Concurrent relays skip each other's rows instead of waiting on them. Rows
// left in processing longer than the stale interval are claimed again.
const claimOutboxBatch = `
UPDATE outbox
SET status = 'processing', attempts = attempts + 1, updated_at = now()
WHERE id IN (
    SELECT id FROM outbox
    WHERE status = 'new'
       OR (status = 'processing' AND updated_at < now() - $2::interval)
    ORDER BY created_at, id
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, event_type, aggregate_id, payload, status, attempts, created_at, updated_at`

func (q *Queries) ClaimOutboxBatch(ctx context.Context, db DBTX, limit int32, staleAfter time.Duration) ([]Outbox, error) {
	rows, err := db.Query(ctx, claimOutboxBatch, limit, staleAfter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Outbox{}
	for rows.Next() {
		var i Outbox
		if err := rows.Scan(
			&i.ID,
			&i.EventType,
			&i.AggregateID,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const markOutboxProcessed = `UPDATE outbox SET status = 'processed', updated_at = now() WHERE id = ANY($1::uuid[])`

func (q *Queries) MarkOutboxProcessed(ctx context.Context, db DBTX, ids []uuid.UUID) error {
	_, err := db.Exec(ctx, markOutboxProcessed, ids)
	return err
}

const releaseOutboxEvents = `UPDATE outbox SET status = 'new', updated_at = now() WHERE id = ANY($1::uuid[])`

func (q *Queries) ReleaseOutboxEvents(ctx context.Context, db DBTX, ids []uuid.UUID) error {
	_, err := db.Exec(ctx, releaseOutboxEvents, ids)
	return err
}

const countOutboxByStatus = `SELECT count(*) FROM outbox WHERE status = $1`

func (q *Queries) CountOutboxByStatus(ctx context.Context, db DBTX, status string) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countOutboxByStatus, status).Scan(&n)
	return n, err
}
