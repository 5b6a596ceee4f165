//go:build unit

package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"roadready/internal/domain/event"
	"roadready/internal/domain/reservation"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository"
	"roadready/internal/pkg/pgconv"
	"roadready/tests/common/builder"
	repositorymock "roadready/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func reservationRow(r *reservation.Reservation) query.Reservations {
	return query.Reservations{
		ID:          r.ID(),
		CarID:       r.CarID(),
		UserID:      r.UserID(),
		StartDate:   pgconv.TimeToPgtype(r.Period().Start()),
		EndDate:     pgconv.TimeToPgtype(r.Period().End()),
		State:       r.StoredState().String(),
		CancelledAt: pgconv.TimePtrToPgtype(r.CancelledAt()),
		CompletedAt: pgconv.TimePtrToPgtype(r.CompletedAt()),
		CreatedAt:   pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func TestReservationRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		err        error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:       "overlapping insert hits the exclusion constraint",
			err:        &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"},
			expectKind: infra.KindExclusionViolated,
		},
		{
			name:       "unknown car",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "reservations_car_id_fkey"},
			expectKind: infra.KindForeignKeyViolated,
		},
		{name: "connection lost", err: errors.New("conn closed"), expectKind: infra.KindDBFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)
			res := builder.NewReservationBuilder().BuildStored()

			mockQueries.EXPECT().CreateReservation(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.CreateReservationParams) (query.Reservations, error) {
					assert.Equal(t, res.ID(), arg.ID)
					assert.Equal(t, "confirmed", arg.State)
					assert.True(t, arg.StartDate.Time.Equal(res.Period().Start()))
					return query.Reservations{}, tc.err
				})

			err := repo.Create(ctx, res)

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
		})
	}
}

func TestReservationRepository_LockByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the locked row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)
		want := builder.NewReservationBuilder().WithState(reservation.StateCancelled).BuildStored()

		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, want.ID()).Return(reservationRow(want), nil)

		got, err := repo.LockByID(ctx, want.ID())

		require.NoError(t, err)
		assert.Equal(t, want.ID(), got.ID())
		assert.Equal(t, reservation.StateCancelled, got.StoredState())
		require.NotNil(t, got.CancelledAt())
		assert.True(t, want.CancelledAt().Equal(*got.CancelledAt()))
	})

	t.Run("no rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)
		id := uuid.New()

		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, id).Return(query.Reservations{}, pgx.ErrNoRows)

		_, err := repo.LockByID(ctx, id)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("unknown stored state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)
		row := reservationRow(builder.NewReservationBuilder().BuildStored())
		row.State = "active"

		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, row.ID).Return(row, nil)

		_, err := repo.LockByID(ctx, row.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepository_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, mockDB)

	carID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	period := reservation.ReconstructPeriod(start, start.Add(2*reservation.Day))
	existing := builder.NewReservationBuilder().WithCarID(carID).BuildStored()

	mockQueries.EXPECT().
		FindOverlappingReservations(ctx, mockDB, carID, pgconv.TimeToPgtype(period.Start()), pgconv.TimeToPgtype(period.End())).
		Return([]query.Reservations{reservationRow(existing)}, nil)

	got, err := repo.FindOverlapping(ctx, carID, period)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID(), got[0].ID())
}

func TestReservationRepository_UpdateState(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		affected   int64
		err        error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "row vanished", affected: 0, expectKind: infra.KindNotFound},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, expectKind: infra.KindDBFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)
			res := builder.NewReservationBuilder().BuildStored()
			_, err := res.Cancel(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			mockQueries.EXPECT().UpdateReservationState(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.UpdateReservationStateParams) (int64, error) {
					assert.Equal(t, "cancelled", arg.State)
					assert.True(t, arg.CancelledAt.Valid)
					assert.False(t, arg.CompletedAt.Valid)
					return tc.affected, tc.err
				})

			err = repo.UpdateState(ctx, res)

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			if tc.err != nil {
				assert.True(t, infra.IsRetryable(err))
			}
		})
	}
}

func TestOutboxRepository_Append(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockOutboxWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewOutboxRepository(mockQueries, mockDB)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	paymentID := uuid.New()
	e := event.New(event.PaymentSettled, paymentID, event.PaymentPayload{PaymentID: paymentID, AmountCents: 15000, Nights: 3}, now)

	mockQueries.EXPECT().InsertOutboxEvent(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.InsertOutboxEventParams) error {
			assert.Equal(t, e.ID, arg.ID)
			assert.Equal(t, "payment.settled", arg.EventType)
			assert.Equal(t, paymentID, arg.AggregateID)
			var payload event.PaymentPayload
			require.NoError(t, json.Unmarshal(arg.Payload, &payload))
			assert.Equal(t, int64(15000), payload.AmountCents)
			return nil
		})

	require.NoError(t, repo.Append(ctx, e))
}
