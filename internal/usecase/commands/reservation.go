package commands

import (
	"context"
	"log/slog"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/event"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/infra/metrics"
	"roadready/internal/pkg/clock"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCarNotFound         = errs.Define(errs.KindNotFound, "car not found")
	ErrReservationNotFound = errs.Define(errs.KindNotFound, "reservation not found")
)

type BookingRequest struct {
	CarID     uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type BookingResult struct {
	ReservationID uuid.UUID
}

type ReservationCommands interface {
	RequestBooking(ctx context.Context, p auth.Principal, req BookingRequest) (*BookingResult, error)
	Cancel(ctx context.Context, reservationID uuid.UUID, p auth.Principal) error
	Complete(ctx context.Context, reservationID uuid.UUID, p auth.Principal) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk}
}

// RequestBooking locks the car row, so concurrent bookings of one car run one
// at a time through the overlap check.
func (uc *reservationCommandsImpl) RequestBooking(ctx context.Context, p auth.Principal, req BookingRequest) (*BookingResult, error) {
	if !p.IsAuthenticated() {
		return nil, auth.ErrUnauthenticated
	}

	now := uc.clock.Now()
	period, err := reservation.NewPeriod(req.StartDate, req.EndDate, now)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cars().LockByID(ctx, req.CarID)
		if err != nil {
			return notFoundAs(err, ErrCarNotFound)
		}
		if err := c.EnsureBookable(); err != nil {
			return err
		}

		existing, err := tx.Reservations().FindOverlapping(ctx, c.ID(), period)
		if err != nil {
			return err
		}

		res := reservation.NewReservation(c.ID(), p.UserID, period, now)
		if err := res.Confirm(existing); err != nil {
			return err
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindExclusionViolated) {
				return errs.Mark(err, reservation.ErrOverlap)
			}
			return err
		}

		if err := tx.Outbox().Append(ctx, reservationEvent(event.ReservationConfirmed, res, now)); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		outcome := metrics.OutcomeRejected
		if errs.KindOf(err) == errs.KindConflict {
			outcome = metrics.OutcomeConflict
		}
		metrics.BookingsTotal.WithLabelValues(outcome).Inc()
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues(metrics.OutcomeConfirmed).Inc()
	slog.InfoContext(ctx, "reservation confirmed",
		"reservation_id", created.ID(),
		"car_id", created.CarID(),
		"period", created.Period().String())
	return &BookingResult{ReservationID: created.ID()}, nil
}

// Cancel succeeds without writing when the reservation is already cancelled.
func (uc *reservationCommandsImpl) Cancel(ctx context.Context, reservationID uuid.UUID, p auth.Principal) error {
	var changed bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().LockByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, ErrReservationNotFound)
		}
		if err := auth.OwnerOrAdmin(res.UserID(), p); err != nil {
			return err
		}

		now := uc.clock.Now()
		changed, err = res.Cancel(now)
		if err != nil || !changed {
			return err
		}
		if err := tx.Reservations().UpdateState(ctx, res); err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, reservationEvent(event.ReservationCancelled, res, now))
	})
	if err != nil {
		return err
	}
	if changed {
		metrics.ReservationTransitions.WithLabelValues(string(reservation.StateCancelled)).Inc()
	}
	return nil
}

// Complete closes an active rental early. The stored state leaves confirmed,
// so the rest of the interval is free for new bookings.
func (uc *reservationCommandsImpl) Complete(ctx context.Context, reservationID uuid.UUID, p auth.Principal) error {
	if err := auth.Require(user.RoleAdmin, p.Roles); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().LockByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, ErrReservationNotFound)
		}

		now := uc.clock.Now()
		if err := res.Complete(now); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateState(ctx, res); err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, reservationEvent(event.ReservationCompleted, res, now))
	})
	if err != nil {
		return err
	}
	metrics.ReservationTransitions.WithLabelValues(string(reservation.StateCompleted)).Inc()
	return nil
}

func reservationEvent(t event.Type, res *reservation.Reservation, now time.Time) event.Event {
	return event.New(t, res.ID(), event.ReservationPayload{
		ReservationID: res.ID(),
		CarID:         res.CarID(),
		UserID:        res.UserID(),
		StartDate:     res.Period().Start(),
		EndDate:       res.Period().End(),
		State:         res.StoredState().String(),
	}, now)
}
