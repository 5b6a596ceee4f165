package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// The entry is written only while the generation still matches the one the
// reader saw before loading from the store. A reader that loaded before an
// invalidation therefore cannot put the old listing back.
var setIfGenerationScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
    current = '0'
end
if current ~= ARGV[1] then
    return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CarReviewsCache stores the per-car review listing. Redis failures degrade to
// a cache miss; the database stays the source of truth.
type CarReviewsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCarReviewsCache(client redis.Cmdable, ttl time.Duration) *CarReviewsCache {
	return &CarReviewsCache{client: client, ttl: ttl}
}

func (c *CarReviewsCache) Get(ctx context.Context, carID uuid.UUID) (*queries.CarReviews, int64, bool) {
	vals, err := c.client.MGet(ctx, CarReviewsGenerationKey(carID), CarReviewsKey(carID)).Result()
	if err != nil {
		slog.Warn("car reviews cache read failed", "car_id", carID, "error", err)
		return nil, 0, false
	}

	gen := parseGeneration(vals[0])
	raw, ok := vals[1].(string)
	if !ok {
		return nil, gen, false
	}

	var cached queries.CarReviews
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		slog.Warn("car reviews cache entry is corrupt", "car_id", carID, "error", err)
		return nil, gen, false
	}
	if cached.Reviews == nil {
		cached.Reviews = []*queries.ReviewView{}
	}
	return &cached, gen, true
}

func (c *CarReviewsCache) Set(ctx context.Context, carID uuid.UUID, gen int64, value *queries.CarReviews) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to encode car reviews for cache", "car_id", carID, "error", err)
		return
	}
	keys := []string{CarReviewsGenerationKey(carID), CarReviewsKey(carID)}
	stored, err := setIfGenerationScript.Run(ctx, c.client, keys, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		slog.Warn("car reviews cache write failed", "car_id", carID, "error", err)
		return
	}
	if stored == 0 {
		slog.DebugContext(ctx, "car reviews changed while loading; cache write skipped", "car_id", carID)
	}
}

// InvalidateCar bumps the generation and drops the entry in one transaction.
func (c *CarReviewsCache) InvalidateCar(ctx context.Context, carID uuid.UUID) {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, CarReviewsGenerationKey(carID))
		p.Del(ctx, CarReviewsKey(carID))
		return nil
	})
	if err != nil {
		slog.Warn("car reviews cache invalidation failed", "car_id", carID, "error", err)
	}
}

func parseGeneration(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// NoopCarReviewsCache is used when Redis is disabled.
type NoopCarReviewsCache struct{}

func (NoopCarReviewsCache) Get(context.Context, uuid.UUID) (*queries.CarReviews, int64, bool) {
	return nil, 0, false
}

func (NoopCarReviewsCache) Set(context.Context, uuid.UUID, int64, *queries.CarReviews) {}

func (NoopCarReviewsCache) InvalidateCar(context.Context, uuid.UUID) {}
