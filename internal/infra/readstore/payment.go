package readstore

import (
	"context"
	"time"

	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadQueries interface {
	GetPaymentByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Payments, error)
	ListPaymentsFirstPage(ctx context.Context, db query.DBTX, userID pgtype.UUID, limit int32) ([]query.Payments, error)
	ListPaymentsKeyset(ctx context.Context, db query.DBTX, userID pgtype.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]query.Payments, error)
}

type PaymentReadStore struct {
	queries PaymentReadQueries
	db      query.DBTX
}

func NewPaymentReadStore(queries PaymentReadQueries, db query.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row, err := r.queries.GetPaymentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment by id", err)
	}
	return toPaymentView(row), nil
}

func (r *PaymentReadStore) ListFirstPage(ctx context.Context, userID *uuid.UUID, limit int32) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsFirstPage(ctx, r.db, toPgUUID(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments first page", err)
	}
	return mapRows(rows, toPaymentView), nil
}

func (r *PaymentReadStore) ListKeyset(ctx context.Context, userID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsKeyset(ctx, r.db, toPgUUID(userID), lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments keyset", err)
	}
	return mapRows(rows, toPaymentView), nil
}
