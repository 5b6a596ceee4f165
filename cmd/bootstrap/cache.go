package bootstrap

import (
	"context"
	"log/slog"

	"roadready/internal/handler/middleware"
	"roadready/internal/infra/cache"
	"roadready/internal/pkg/config"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// CacheModule degrades to no-op implementations when Redis is disabled, so the
// review cache and the rate limiter are always safe to inject.
var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
		NewCarReviewsCache,
		NewTokenBucket,
		middleware.NewRateLimiter,
	),
)

// NewRedisClient returns nil when Redis is disabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		slog.Info("redis disabled; caching and rate limiting are off")
		return nil, nil
	}
	client, err := cache.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewCarReviewsCache(client *redis.Client, cfg config.Config) (queries.CarReviewsCache, commands.CarReviewsInvalidator) {
	if client == nil {
		noop := cache.NoopCarReviewsCache{}
		return noop, noop
	}
	c := cache.NewCarReviewsCache(client, cfg.Redis.CacheTTL)
	return c, c
}

// NewTokenBucket returns nil, which disables the limiter, unless both Redis
// and rate limiting are enabled.
func NewTokenBucket(client *redis.Client, cfg config.Config) *cache.TokenBucket {
	if client == nil || !cfg.RateLimit.Enabled {
		return nil
	}
	return cache.NewTokenBucket(client, cfg.RateLimit)
}
