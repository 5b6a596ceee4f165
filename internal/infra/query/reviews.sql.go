package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reviewColumns = `id, car_id, user_id, reservation_id, rating, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (Reviews, error) {
	var i Reviews
	err := row.Scan(
		&i.ID,
		&i.CarID,
		&i.UserID,
		&i.ReservationID,
		&i.Rating,
		&i.Comment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectReviews(rows pgx.Rows) ([]Reviews, error) {
	defer rows.Close()
	items := []Reviews{}
	for rows.Next() {
		i, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createReview = `
INSERT INTO reviews (id, car_id, user_id, reservation_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + reviewColumns

type CreateReviewParams struct {
	ID            uuid.UUID
	CarID         uuid.UUID
	UserID        uuid.UUID
	ReservationID uuid.UUID
	Rating        int32
	Comment       string
	CreatedAt     pgtype.Timestamptz
}

func (q *Queries) CreateReview(ctx context.Context, db DBTX, arg CreateReviewParams) (Reviews, error) {
	row := db.QueryRow(ctx, createReview,
		arg.ID,
		arg.CarID,
		arg.UserID,
		arg.ReservationID,
		arg.Rating,
		arg.Comment,
		arg.CreatedAt,
	)
	return scanReview(row)
}

const getReviewByID = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

func (q *Queries) GetReviewByID(ctx context.Context, db DBTX, id uuid.UUID) (Reviews, error) {
	return scanReview(db.QueryRow(ctx, getReviewByID, id))
}

const getReviewForUpdate = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 FOR UPDATE`

func (q *Queries) GetReviewForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reviews, error) {
	return scanReview(db.QueryRow(ctx, getReviewForUpdate, id))
}

const listReviews = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at, id`

func (q *Queries) ListReviews(ctx context.Context, db DBTX) ([]Reviews, error) {
	rows, err := db.Query(ctx, listReviews)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

const listReviewsByCar = `SELECT ` + reviewColumns + ` FROM reviews WHERE car_id = $1 ORDER BY created_at, id`

func (q *Queries) ListReviewsByCar(ctx context.Context, db DBTX, carID uuid.UUID) ([]Reviews, error) {
	rows, err := db.Query(ctx, listReviewsByCar, carID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

const updateReview = `UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`

type UpdateReviewParams struct {
	ID        uuid.UUID
	Rating    int32
	Comment   string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateReview(ctx context.Context, db DBTX, arg UpdateReviewParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReview, arg.ID, arg.Rating, arg.Comment, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteReview = `DELETE FROM reviews WHERE id = $1`

func (q *Queries) DeleteReview(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteReview, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
