package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, reservation_id, user_id, amount_cents, nights, settled_at, created_at`

func scanPayment(row interface{ Scan(...any) error }) (Payments, error) {
	var i Payments
	err := row.Scan(
		&i.ID,
		&i.ReservationID,
		&i.UserID,
		&i.AmountCents,
		&i.Nights,
		&i.SettledAt,
		&i.CreatedAt,
	)
	return i, err
}

func collectPayments(rows pgx.Rows) ([]Payments, error) {
	defer rows.Close()
	items := []Payments{}
	for rows.Next() {
		i, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createPayment = `
INSERT INTO payments (id, reservation_id, user_id, amount_cents, nights, settled_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + paymentColumns

type CreatePaymentParams struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	UserID        uuid.UUID
	AmountCents   int64
	Nights        int64
	SettledAt     pgtype.Timestamptz
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (Payments, error) {
	row := db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.ReservationID,
		arg.UserID,
		arg.AmountCents,
		arg.Nights,
		arg.SettledAt,
	)
	return scanPayment(row)
}

const getPaymentByID = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

func (q *Queries) GetPaymentByID(ctx context.Context, db DBTX, id uuid.UUID) (Payments, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByID, id))
}

const listPaymentsFirstPage = `
SELECT ` + paymentColumns + `
FROM payments
WHERE ($1::uuid IS NULL OR user_id = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (q *Queries) ListPaymentsFirstPage(ctx context.Context, db DBTX, userID pgtype.UUID, limit int32) ([]Payments, error) {
	rows, err := db.Query(ctx, listPaymentsFirstPage, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

const listPaymentsKeyset = `
SELECT ` + paymentColumns + `
FROM payments
WHERE ($1::uuid IS NULL OR user_id = $1)
  AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4`

func (q *Queries) ListPaymentsKeyset(ctx context.Context, db DBTX, userID pgtype.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]Payments, error) {
	rows, err := db.Query(ctx, listPaymentsKeyset, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}
