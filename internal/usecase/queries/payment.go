package queries

import (
	"context"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/infra"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPaymentNotFound = errs.Define(errs.KindNotFound, "payment not found")

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	ListFirstPage(ctx context.Context, userID *uuid.UUID, limit int32) ([]*PaymentView, error)
	ListKeyset(ctx context.Context, userID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*PaymentView, error)
}

type PaymentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*PaymentView, error)
	List(ctx context.Context, p auth.Principal, cursor *Cursor, limit int) (Page[*PaymentView], error)
}

type paymentQueriesImpl struct {
	readStore PaymentReadStore
}

func NewPaymentQueries(readStore PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{readStore: readStore}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*PaymentView, error) {
	v, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if err := auth.OwnerOrAdmin(v.UserID, p); err != nil {
		return nil, err
	}
	return v, nil
}

func (q *paymentQueriesImpl) List(ctx context.Context, p auth.Principal, cursor *Cursor, limit int) (Page[*PaymentView], error) {
	limit = ValidateLimit(limit)
	owner := ownerFilter(p)

	var rows []*PaymentView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.ListFirstPage(ctx, owner, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return Page[*PaymentView]{}, derr
		}
		rows, err = q.readStore.ListKeyset(ctx, owner, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return Page[*PaymentView]{}, err
	}
	return paginate(rows, limit, func(v *PaymentView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	}), nil
}
