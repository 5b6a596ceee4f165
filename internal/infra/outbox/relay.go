package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"roadready/internal/domain/event"
	"roadready/internal/infra"
	"roadready/internal/infra/messaging"
	"roadready/internal/infra/metrics"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/config"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

type RelayQueries interface {
	ClaimOutboxBatch(ctx context.Context, db query.DBTX, limit int32, staleAfter time.Duration) ([]query.Outbox, error)
	MarkOutboxProcessed(ctx context.Context, db query.DBTX, ids []uuid.UUID) error
	ReleaseOutboxEvents(ctx context.Context, db query.DBTX, ids []uuid.UUID) error
}

// Relay moves committed outbox rows to the publisher. Delivery is at least
// once: a crash between publish and mark leaves the row to be reclaimed.
type Relay struct {
	queries    RelayQueries
	db         query.DBTX
	publisher  messaging.Publisher
	interval   time.Duration
	batchSize  int32
	staleAfter time.Duration
	producer   string
}

func NewRelay(queries RelayQueries, db query.DBTX, publisher messaging.Publisher, cfg config.KafkaConfig) *Relay {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = time.Minute
	}
	return &Relay{
		queries:    queries,
		db:         db,
		publisher:  publisher,
		interval:   interval,
		batchSize:  int32(batch), // #nosec G115 -- small configured value
		staleAfter: staleAfter,
		producer:   cfg.Producer,
	}
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("outbox relay started", "interval", r.interval, "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil {
				slog.Error("outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessBatch returns the number of events published.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	rows, err := r.queries.ClaimOutboxBatch(ctx, r.db, r.batchSize, r.staleAfter)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim outbox batch", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var processed, failed []uuid.UUID
	for _, row := range rows {
		sendCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err := r.publisher.Publish(sendCtx, r.envelope(row))
		cancel()

		if err != nil {
			slog.Warn("failed to publish outbox event",
				"event_id", row.ID,
				"event_type", row.EventType,
				"attempts", row.Attempts,
				"error", err)
			metrics.OutboxPublishErrors.Inc()
			failed = append(failed, row.ID)
			continue
		}
		metrics.OutboxPublished.Inc()
		processed = append(processed, row.ID)
	}

	if len(processed) > 0 {
		if err := r.queries.MarkOutboxProcessed(ctx, r.db, processed); err != nil {
			return 0, infra.WrapRepoErr("failed to mark outbox events processed", err)
		}
	}
	if len(failed) > 0 {
		if err := r.queries.ReleaseOutboxEvents(ctx, r.db, failed); err != nil {
			slog.Error("failed to release outbox events", "count", len(failed), "error", err)
		}
	}

	slog.Debug("outbox batch relayed", "published", len(processed), "failed", len(failed))
	return len(processed), nil
}

func (r *Relay) envelope(row query.Outbox) event.Envelope {
	return event.Envelope{
		EventID:      row.ID,
		EventType:    event.Type(row.EventType),
		EventVersion: event.Version,
		AggregateID:  row.AggregateID,
		OccurredAt:   row.CreatedAt.Time.UTC(),
		Producer:     r.producer,
		Payload:      json.RawMessage(row.Payload),
	}
}
