package repository

import (
	"context"

	"roadready/internal/domain/reservation"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository/converter"
	"roadready/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (query.Reservations, error)
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	GetReservationForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	FindOverlappingReservations(ctx context.Context, db query.DBTX, carID uuid.UUID, start, end pgtype.Timestamptz) ([]query.Reservations, error)
	UpdateReservationState(ctx context.Context, db query.DBTX, arg query.UpdateReservationStateParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      query.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db query.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create stores a confirmed reservation. A concurrent overlapping insert that
// slipped past the row lock is rejected by the exclusion constraint.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if _, err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToCreateParams(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("reservation", err)
	}
	return mapReservation(row)
}

func (r *ReservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("reservation", err)
	}
	return mapReservation(row)
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, carID uuid.UUID, period reservation.Period) ([]*reservation.Reservation, error) {
	rows, err := r.queries.FindOverlappingReservations(ctx, r.db, carID,
		pgconv.TimeToPgtype(period.Start()), pgconv.TimeToPgtype(period.End()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}
	result := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := mapReservation(row)
		if err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *ReservationRepository) UpdateState(ctx context.Context, res *reservation.Reservation) error {
	n, err := r.queries.UpdateReservationState(ctx, r.db, converter.ReservationToStateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation state", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func mapReservation(row query.Reservations) (*reservation.Reservation, error) {
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is invalid", err, infra.KindDBFailure)
	}
	return res, nil
}
