package readstore

import (
	"context"

	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewReadQueries interface {
	GetReviewByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reviews, error)
	ListReviews(ctx context.Context, db query.DBTX) ([]query.Reviews, error)
	ListReviewsByCar(ctx context.Context, db query.DBTX, carID uuid.UUID) ([]query.Reviews, error)
}

type ReviewReadStore struct {
	queries ReviewReadQueries
	db      query.DBTX
}

func NewReviewReadStore(queries ReviewReadQueries, db query.DBTX) *ReviewReadStore {
	return &ReviewReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	row, err := r.queries.GetReviewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get review by id", err)
	}
	return toReviewView(row), nil
}

func (r *ReviewReadStore) List(ctx context.Context) ([]*queries.ReviewView, error) {
	rows, err := r.queries.ListReviews(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return mapRows(rows, toReviewView), nil
}

func (r *ReviewReadStore) ListByCar(ctx context.Context, carID uuid.UUID) ([]*queries.ReviewView, error) {
	rows, err := r.queries.ListReviewsByCar(ctx, r.db, carID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews by car", err)
	}
	return mapRows(rows, toReviewView), nil
}
