package bootstrap

import (
	"context"
	"log/slog"

	"roadready/internal/infra/messaging"
	"roadready/internal/infra/outbox"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
		NewRelay,
	),
	fx.Invoke(startRelay),
)

func NewPublisher(cfg config.Config, logger *slog.Logger) messaging.Publisher {
	if !cfg.Kafka.Enabled {
		logger.Info("kafka disabled; outbox events go to the log")
		return messaging.NewLogPublisher(logger)
	}
	return messaging.NewKafkaPublisher(cfg.Kafka)
}

func NewRelay(q *query.Queries, pool *pgxpool.Pool, publisher messaging.Publisher, cfg config.Config) *outbox.Relay {
	return outbox.NewRelay(q, pool, publisher, cfg.Kafka)
}

func startRelay(lc fx.Lifecycle, relay *outbox.Relay, publisher messaging.Publisher) {
	var (
		cancel context.CancelFunc
		group  *errgroup.Group
	)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			group, ctx = errgroup.WithContext(ctx)
			group.Go(func() error {
				return relay.Run(ctx)
			})
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			if err := group.Wait(); err != nil {
				slog.Error("outbox relay exited with error", "error", err)
			}
			return publisher.Close()
		},
	})
}
