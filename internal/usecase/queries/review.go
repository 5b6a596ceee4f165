package queries

import (
	"context"
	"log/slog"

	"roadready/internal/infra"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrReviewNotFound = errs.Define(errs.KindNotFound, "review not found")

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	List(ctx context.Context) ([]*ReviewView, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*ReviewView, error)
}

// CarReviewsCache is a best-effort read-through cache. Misses and failures
// both fall back to the store. Get also reports the car's invalidation
// generation; Set with that generation is dropped if the car was invalidated
// in between.
type CarReviewsCache interface {
	Get(ctx context.Context, carID uuid.UUID) (v *CarReviews, generation int64, ok bool)
	Set(ctx context.Context, carID uuid.UUID, generation int64, v *CarReviews)
}

type ReviewQueries interface {
	GetAll(ctx context.Context) ([]*ReviewView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	// GetByCarID fails with ErrCarNotFound for an unknown car and returns an
	// empty review list for a car nobody reviewed yet.
	GetByCarID(ctx context.Context, carID uuid.UUID) (*CarReviews, error)
}

type reviewQueriesImpl struct {
	reviews ReviewReadStore
	cars    CarReadStore
	cache   CarReviewsCache
}

func NewReviewQueries(reviews ReviewReadStore, cars CarReadStore, cache CarReviewsCache) ReviewQueries {
	return &reviewQueriesImpl{reviews: reviews, cars: cars, cache: cache}
}

func (q *reviewQueriesImpl) GetAll(ctx context.Context) ([]*ReviewView, error) {
	return q.reviews.List(ctx)
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.reviews.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) GetByCarID(ctx context.Context, carID uuid.UUID) (*CarReviews, error) {
	cached, gen, ok := q.cache.Get(ctx, carID)
	if ok {
		return cached, nil
	}

	var (
		c       *CarView
		reviews []*ReviewView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = q.cars.FindByID(gctx, carID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = q.reviews.ListByCar(gctx, carID)
		return err
	})
	if err := g.Wait(); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	result := &CarReviews{Car: c, Reviews: reviews}
	q.cache.Set(ctx, carID, gen, result)
	slog.DebugContext(ctx, "car reviews loaded from store", "car_id", carID, "count", len(reviews))
	return result, nil
}
