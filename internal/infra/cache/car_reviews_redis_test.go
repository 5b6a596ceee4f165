//go:build e2e

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCarReviewsCache_Redis(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	c := NewCarReviewsCache(client, time.Minute)

	listing := func(carID uuid.UUID, comments ...string) *queries.CarReviews {
		v := &queries.CarReviews{Car: &queries.CarView{ID: carID}, Reviews: []*queries.ReviewView{}}
		for _, comment := range comments {
			v.Reviews = append(v.Reviews, &queries.ReviewView{ID: uuid.New(), CarID: carID, Comment: comment})
		}
		return v
	}

	t.Run("fill then hit", func(t *testing.T) {
		carID := uuid.New()

		_, gen, ok := c.Get(ctx, carID)
		require.False(t, ok)
		c.Set(ctx, carID, gen, listing(carID, "smooth ride"))

		got, _, ok := c.Get(ctx, carID)
		require.True(t, ok)
		require.Len(t, got.Reviews, 1)
		assert.Equal(t, "smooth ride", got.Reviews[0].Comment)
	})

	t.Run("fill from before an invalidation is dropped", func(t *testing.T) {
		carID := uuid.New()

		_, staleGen, ok := c.Get(ctx, carID)
		require.False(t, ok)

		// A review lands while the first reader is still loading.
		c.InvalidateCar(ctx, carID)
		c.Set(ctx, carID, staleGen, listing(carID))

		_, gen, ok := c.Get(ctx, carID)
		assert.False(t, ok)
		assert.Equal(t, staleGen+1, gen)

		c.Set(ctx, carID, gen, listing(carID, "fresh"))
		got, _, ok := c.Get(ctx, carID)
		require.True(t, ok)
		require.Len(t, got.Reviews, 1)
		assert.Equal(t, "fresh", got.Reviews[0].Comment)
	})

	t.Run("invalidation drops a cached entry", func(t *testing.T) {
		carID := uuid.New()
		_, gen, _ := c.Get(ctx, carID)
		c.Set(ctx, carID, gen, listing(carID, "ok"))

		c.InvalidateCar(ctx, carID)

		_, _, ok := c.Get(ctx, carID)
		assert.False(t, ok)
	})
}
