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

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	ListReservationsFirstPage(ctx context.Context, db query.DBTX, userID pgtype.UUID, limit int32) ([]query.Reservations, error)
	ListReservationsKeyset(ctx context.Context, db query.DBTX, userID pgtype.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]query.Reservations, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      query.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db query.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation by id", err)
	}
	return toReservationView(row), nil
}

func (r *ReservationReadStore) ListFirstPage(ctx context.Context, userID *uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsFirstPage(ctx, r.db, toPgUUID(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations first page", err)
	}
	return mapRows(rows, toReservationView), nil
}

func (r *ReservationReadStore) ListKeyset(ctx context.Context, userID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsKeyset(ctx, r.db, toPgUUID(userID), lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations keyset", err)
	}
	return mapRows(rows, toReservationView), nil
}
