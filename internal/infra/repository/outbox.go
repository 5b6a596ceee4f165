package repository

import (
	"context"
	"encoding/json"

	"roadready/internal/domain/event"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
)

type OutboxWriteQueries interface {
	InsertOutboxEvent(ctx context.Context, db query.DBTX, arg query.InsertOutboxEventParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      query.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db query.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

// Append must run on the transaction that performs the state change.
func (r *OutboxRepository) Append(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return infra.WrapRepoErr("failed to encode outbox payload", err, infra.KindDBFailure)
	}
	err = r.queries.InsertOutboxEvent(ctx, r.db, query.InsertOutboxEventParams{
		ID:          e.ID,
		EventType:   string(e.Type),
		AggregateID: e.AggregateID,
		Payload:     payload,
		CreatedAt:   pgconv.TimeToPgtype(e.OccurredAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}
