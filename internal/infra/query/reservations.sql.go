package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, car_id, user_id, start_date, end_date, state, cancelled_at, completed_at, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (Reservations, error) {
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.CarID,
		&i.UserID,
		&i.StartDate,
		&i.EndDate,
		&i.State,
		&i.CancelledAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectReservations(rows pgx.Rows) ([]Reservations, error) {
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createReservation = `
INSERT INTO reservations (id, car_id, user_id, start_date, end_date, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + reservationColumns

type CreateReservationParams struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	UserID    uuid.UUID
	StartDate pgtype.Timestamptz
	EndDate   pgtype.Timestamptz
	State     string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (Reservations, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.CarID,
		arg.UserID,
		arg.StartDate,
		arg.EndDate,
		arg.State,
		arg.CreatedAt,
	)
	return scanReservation(row)
}

const getReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const getReservationForUpdate = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

// Half-open overlap against confirmed rows only. Cancelled and early
// completed rows free their interval.
const findOverlappingReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE car_id = $1
  AND state = 'confirmed'
  AND start_date < $3
  AND $2 < end_date
ORDER BY start_date, id`

func (q *Queries) FindOverlappingReservations(ctx context.Context, db DBTX, carID uuid.UUID, start, end pgtype.Timestamptz) ([]Reservations, error) {
	rows, err := db.Query(ctx, findOverlappingReservations, carID, start, end)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const updateReservationState = `
UPDATE reservations
SET state = $2, cancelled_at = $3, completed_at = $4, updated_at = $5
WHERE id = $1`

type UpdateReservationStateParams struct {
	ID          uuid.UUID
	State       string
	CancelledAt pgtype.Timestamptz
	CompletedAt pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) UpdateReservationState(ctx context.Context, db DBTX, arg UpdateReservationStateParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationState,
		arg.ID,
		arg.State,
		arg.CancelledAt,
		arg.CompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listReservationsFirstPage = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE ($1::uuid IS NULL OR user_id = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (q *Queries) ListReservationsFirstPage(ctx context.Context, db DBTX, userID pgtype.UUID, limit int32) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsFirstPage, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsKeyset = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE ($1::uuid IS NULL OR user_id = $1)
  AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4`

func (q *Queries) ListReservationsKeyset(ctx context.Context, db DBTX, userID pgtype.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsKeyset, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}
