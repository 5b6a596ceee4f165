package repository

import (
	"context"

	"roadready/internal/domain/payment"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db query.DBTX, arg query.CreatePaymentParams) (query.Payments, error)
	GetPaymentByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Payments, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      query.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db query.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

// Create relies on UNIQUE(reservation_id): a second settlement comes back as
// KindDuplicateKey.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if _, err := r.queries.CreatePayment(ctx, r.db, converter.PaymentToCreateParams(p)); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("payment", err)
	}
	return converter.PaymentFromRow(row), nil
}
