//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/car"
	"roadready/internal/domain/event"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/user"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/commands"
	"roadready/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms and records the event", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewReservationCommands(f.store, f.clock)

		got, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1), EndDate: day(4)})
		require.NoError(t, err)

		stored, ok := f.store.Reservation(got.ReservationID)
		require.True(t, ok)
		assert.Equal(t, reservation.StateConfirmed, stored.StoredState())
		assert.Equal(t, f.customer.UserID, stored.UserID())
		assert.Equal(t, []event.Type{event.ReservationConfirmed}, f.store.EventTypes())
	})

	t.Run("overlap names the blocking reservation", func(t *testing.T) {
		f := newFixture()
		blocking := builder.NewReservationBuilder().WithCarID(f.car.ID()).WithPeriod(day(3), day(6)).BuildStored()
		f.store.PutReservation(blocking)
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(5), EndDate: day(8)})

		require.ErrorIs(t, err, reservation.ErrOverlap)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		var overlap *reservation.OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, blocking.ID(), overlap.ConflictingID)
		assert.Len(t, f.store.Reservations(), 1)
		assert.Empty(t, f.store.Events())
	})

	t.Run("touching intervals are both accepted", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1), EndDate: day(5)})
		require.NoError(t, err)
		_, err = uc.RequestBooking(ctx, f.other, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(5), EndDate: day(10)})
		require.NoError(t, err)

		assert.Len(t, f.store.Reservations(), 2)
	})

	t.Run("cancelled reservations do not block", func(t *testing.T) {
		f := newFixture()
		f.store.PutReservation(builder.NewReservationBuilder().
			WithCarID(f.car.ID()).
			WithPeriod(day(1), day(5)).
			WithState(reservation.StateCancelled).
			BuildStored())
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(2), EndDate: day(4)})
		require.NoError(t, err)
	})

	t.Run("other cars do not block", func(t *testing.T) {
		f := newFixture()
		f.store.PutReservation(builder.NewReservationBuilder().WithPeriod(day(1), day(5)).BuildStored())
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1), EndDate: day(5)})
		require.NoError(t, err)
	})

	t.Run("rejections", func(t *testing.T) {
		testCases := []struct {
			name      string
			principal func(f *fixture) auth.Principal
			request   func(f *fixture) commands.BookingRequest
			errIs     error
			kind      errs.Kind
		}{
			{
				name:      "unknown car",
				principal: func(f *fixture) auth.Principal { return f.customer },
				request: func(*fixture) commands.BookingRequest {
					return commands.BookingRequest{CarID: uuid.New(), StartDate: day(1), EndDate: day(2)}
				},
				errIs: commands.ErrCarNotFound,
				kind:  errs.KindNotFound,
			},
			{
				name:      "end before start",
				principal: func(f *fixture) auth.Principal { return f.customer },
				request: func(f *fixture) commands.BookingRequest {
					return commands.BookingRequest{CarID: f.car.ID(), StartDate: day(4), EndDate: day(2)}
				},
				errIs: reservation.ErrInvalidPeriod,
				kind:  errs.KindInvalidInput,
			},
			{
				name:      "start in the past",
				principal: func(f *fixture) auth.Principal { return f.customer },
				request: func(f *fixture) commands.BookingRequest {
					return commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1).Add(-48 * time.Hour), EndDate: day(2)}
				},
				errIs: reservation.ErrStartInPast,
				kind:  errs.KindInvalidInput,
			},
			{
				name:      "anonymous caller",
				principal: func(*fixture) auth.Principal { return auth.Principal{} },
				request: func(f *fixture) commands.BookingRequest {
					return commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1), EndDate: day(2)}
				},
				errIs: auth.ErrUnauthenticated,
				kind:  errs.KindForbidden,
			},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture()
				uc := commands.NewReservationCommands(f.store, f.clock)

				_, err := uc.RequestBooking(ctx, tc.principal(f), tc.request(f))

				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.kind, errs.KindOf(err))
				assert.Empty(t, f.store.Reservations())
			})
		}
	})

	t.Run("retired car", func(t *testing.T) {
		f := newFixture()
		retired := builder.NewCarBuilder().AsRetired().BuildStored()
		f.store.PutCar(retired)
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: retired.ID(), StartDate: day(1), EndDate: day(2)})

		require.ErrorIs(t, err, car.ErrCarRetired)
		assert.Equal(t, errs.KindInvalidStateTransition, errs.KindOf(err))
	})

	t.Run("failed outbox write leaves nothing behind", func(t *testing.T) {
		f := newFixture()
		f.store.FailOn("outbox.append")
		uc := commands.NewReservationCommands(f.store, f.clock)

		_, err := uc.RequestBooking(ctx, f.customer, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(1), EndDate: day(2)})

		require.Error(t, err)
		assert.Equal(t, errs.KindStoreFailure, errs.KindOf(err))
		assert.Empty(t, f.store.Reservations())
		assert.Empty(t, f.store.Events())
	})

	t.Run("concurrent requests for one period confirm exactly once", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewReservationCommands(f.store, f.clock)

		const callers = 8
		var wg sync.WaitGroup
		results := make(chan error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := auth.NewPrincipal(uuid.New(), user.RoleCustomer)
				_, err := uc.RequestBooking(ctx, p, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(2), EndDate: day(6)})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var confirmed, conflicts int
		for err := range results {
			switch {
			case err == nil:
				confirmed++
			case errs.Is(err, reservation.ErrOverlap):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, confirmed)
		assert.Equal(t, callers-1, conflicts)
		assert.Len(t, f.store.Reservations(), 1)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture, mutate func(*builder.ReservationBuilder)) *reservation.Reservation {
		b := builder.NewReservationBuilder().
			WithCarID(f.car.ID()).
			WithUserID(f.customer.UserID).
			WithPeriod(day(2), day(5)).
			WithCreatedAt(day(1).Add(-48 * time.Hour))
		if mutate != nil {
			b.With(mutate)
		}
		r := b.BuildStored()
		f.store.PutReservation(r)
		return r
	}

	t.Run("owner cancels once and repeats without effect", func(t *testing.T) {
		f := newFixture()
		res := seed(f, nil)
		uc := commands.NewReservationCommands(f.store, f.clock)

		require.NoError(t, uc.Cancel(ctx, res.ID(), f.customer))
		require.NoError(t, uc.Cancel(ctx, res.ID(), f.customer))

		stored, _ := f.store.Reservation(res.ID())
		assert.Equal(t, reservation.StateCancelled, stored.StoredState())
		require.NotNil(t, stored.CancelledAt())
		assert.Equal(t, f.clock.Now(), *stored.CancelledAt())
		assert.Equal(t, []event.Type{event.ReservationCancelled}, f.store.EventTypes())
	})

	t.Run("cancelling frees the interval", func(t *testing.T) {
		f := newFixture()
		res := seed(f, nil)
		uc := commands.NewReservationCommands(f.store, f.clock)

		require.NoError(t, uc.Cancel(ctx, res.ID(), f.admin))
		_, err := uc.RequestBooking(ctx, f.other, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(2), EndDate: day(5)})
		require.NoError(t, err)
	})

	t.Run("active reservation can be cancelled", func(t *testing.T) {
		f := newFixture()
		res := seed(f, nil)
		f.clock.Set(day(3))
		uc := commands.NewReservationCommands(f.store, f.clock)

		require.NoError(t, uc.Cancel(ctx, res.ID(), f.customer))
	})

	t.Run("completed reservation", func(t *testing.T) {
		f := newFixture()
		res := seed(f, nil)
		f.clock.Set(day(6))
		uc := commands.NewReservationCommands(f.store, f.clock)

		err := uc.Cancel(ctx, res.ID(), f.customer)

		require.ErrorIs(t, err, reservation.ErrAlreadyCompleted)
		assert.Equal(t, errs.KindInvalidStateTransition, errs.KindOf(err))
		assert.Empty(t, f.store.Events())
	})

	t.Run("another customer", func(t *testing.T) {
		f := newFixture()
		res := seed(f, nil)
		uc := commands.NewReservationCommands(f.store, f.clock)

		err := uc.Cancel(ctx, res.ID(), f.other)

		require.ErrorIs(t, err, auth.ErrForbidden)
		stored, _ := f.store.Reservation(res.ID())
		assert.Equal(t, reservation.StateConfirmed, stored.StoredState())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewReservationCommands(f.store, f.clock)

		err := uc.Cancel(ctx, uuid.New(), f.customer)

		require.ErrorIs(t, err, commands.ErrReservationNotFound)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture) *reservation.Reservation {
		r := builder.NewReservationBuilder().
			WithCarID(f.car.ID()).
			WithUserID(f.customer.UserID).
			WithPeriod(day(2), day(10)).
			WithCreatedAt(day(1).Add(-48 * time.Hour)).
			BuildStored()
		f.store.PutReservation(r)
		return r
	}

	t.Run("admin closes an active rental and frees the rest", func(t *testing.T) {
		f := newFixture()
		res := seed(f)
		f.clock.Set(day(4))
		uc := commands.NewReservationCommands(f.store, f.clock)

		require.NoError(t, uc.Complete(ctx, res.ID(), f.admin))

		stored, _ := f.store.Reservation(res.ID())
		assert.Equal(t, reservation.StateCompleted, stored.StoredState())
		assert.Equal(t, reservation.StateCompleted, stored.StateAt(day(5)))

		_, err := uc.RequestBooking(ctx, f.other, commands.BookingRequest{CarID: f.car.ID(), StartDate: day(5), EndDate: day(8)})
		require.NoError(t, err)
		assert.Equal(t, []event.Type{event.ReservationCompleted, event.ReservationConfirmed}, f.store.EventTypes())
	})

	t.Run("customer is refused before any lookup", func(t *testing.T) {
		f := newFixture()
		f.clock.Set(day(4))
		uc := commands.NewReservationCommands(f.store, f.clock)

		err := uc.Complete(ctx, uuid.New(), f.customer)

		require.ErrorIs(t, err, auth.ErrRoleRequired)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("state rules", func(t *testing.T) {
		testCases := []struct {
			name  string
			now   time.Time
			state reservation.State
			errIs error
		}{
			{name: "not started", now: day(1), state: reservation.StateConfirmed, errIs: reservation.ErrNotActive},
			{name: "already over", now: day(11), state: reservation.StateConfirmed, errIs: reservation.ErrAlreadyCompleted},
			{name: "cancelled", now: day(4), state: reservation.StateCancelled, errIs: reservation.ErrReservationClosed},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture()
				r := builder.NewReservationBuilder().
					WithCarID(f.car.ID()).
					WithPeriod(day(2), day(10)).
					WithState(tc.state).
					BuildStored()
				f.store.PutReservation(r)
				f.clock.Set(tc.now)
				uc := commands.NewReservationCommands(f.store, f.clock)

				err := uc.Complete(ctx, r.ID(), f.admin)

				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, errs.KindInvalidStateTransition, errs.KindOf(err))
			})
		}
	})
}
