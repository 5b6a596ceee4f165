package repository

import (
	"context"

	"roadready/internal/domain/review"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type ReviewWriteQueries interface {
	CreateReview(ctx context.Context, db query.DBTX, arg query.CreateReviewParams) (query.Reviews, error)
	GetReviewForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reviews, error)
	UpdateReview(ctx context.Context, db query.DBTX, arg query.UpdateReviewParams) (int64, error)
	DeleteReview(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
}

type ReviewRepository struct {
	queries ReviewWriteQueries
	db      query.DBTX
}

func NewReviewRepository(queries ReviewWriteQueries, db query.DBTX) *ReviewRepository {
	return &ReviewRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	if _, err := r.queries.CreateReview(ctx, r.db, converter.ReviewToCreateParams(rev)); err != nil {
		return infra.WrapRepoErr("failed to create review", err)
	}
	return nil
}

func (r *ReviewRepository) LockByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	row, err := r.queries.GetReviewForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("review", err)
	}
	rev, err := converter.ReviewFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored review is invalid", err, infra.KindDBFailure)
	}
	return rev, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rev *review.Review) error {
	n, err := r.queries.UpdateReview(ctx, r.db, converter.ReviewToUpdateParams(rev))
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID uuid.UUID) error {
	n, err := r.queries.DeleteReview(ctx, r.db, reviewID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
