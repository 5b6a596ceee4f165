package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const carColumns = `id, make, model, year, daily_rate_cents, status, created_at, updated_at`

func scanCar(row interface{ Scan(...any) error }) (Cars, error) {
	var i Cars
	err := row.Scan(
		&i.ID,
		&i.Make,
		&i.Model,
		&i.Year,
		&i.DailyRateCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectCars(rows pgx.Rows) ([]Cars, error) {
	defer rows.Close()
	items := []Cars{}
	for rows.Next() {
		i, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createCar = `
INSERT INTO cars (id, make, model, year, daily_rate_cents, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + carColumns

type CreateCarParams struct {
	ID             uuid.UUID
	Make           string
	Model          string
	Year           int32
	DailyRateCents int64
	Status         string
	CreatedAt      pgtype.Timestamptz
}

func (q *Queries) CreateCar(ctx context.Context, db DBTX, arg CreateCarParams) (Cars, error) {
	row := db.QueryRow(ctx, createCar,
		arg.ID,
		arg.Make,
		arg.Model,
		arg.Year,
		arg.DailyRateCents,
		arg.Status,
		arg.CreatedAt,
	)
	return scanCar(row)
}

const getCarByID = `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

func (q *Queries) GetCarByID(ctx context.Context, db DBTX, id uuid.UUID) (Cars, error) {
	return scanCar(db.QueryRow(ctx, getCarByID, id))
}

// The row lock serializes concurrent bookings of the same car.
const getCarForUpdate = `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`

func (q *Queries) GetCarForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Cars, error) {
	return scanCar(db.QueryRow(ctx, getCarForUpdate, id))
}

const carExists = `SELECT EXISTS (SELECT 1 FROM cars WHERE id = $1)`

func (q *Queries) CarExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, carExists, id).Scan(&exists)
	return exists, err
}

const listCars = `SELECT ` + carColumns + ` FROM cars ORDER BY created_at, id`

func (q *Queries) ListCars(ctx context.Context, db DBTX) ([]Cars, error) {
	rows, err := db.Query(ctx, listCars)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

const updateCar = `
UPDATE cars
SET make = $2, model = $3, year = $4, daily_rate_cents = $5, status = $6, updated_at = $7
WHERE id = $1`

type UpdateCarParams struct {
	ID             uuid.UUID
	Make           string
	Model          string
	Year           int32
	DailyRateCents int64
	Status         string
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpdateCar(ctx context.Context, db DBTX, arg UpdateCarParams) (int64, error) {
	tag, err := db.Exec(ctx, updateCar,
		arg.ID,
		arg.Make,
		arg.Model,
		arg.Year,
		arg.DailyRateCents,
		arg.Status,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
