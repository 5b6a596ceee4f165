package reservation

import (
	"time"

	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMissingDates      = errs.Define(errs.KindInvalidInput, "start and end dates are required")
	ErrInvalidPeriod     = errs.Define(errs.KindInvalidInput, "start date must be before end date")
	ErrStartInPast       = errs.Define(errs.KindInvalidInput, "start date cannot be in the past")
	ErrPeriodTooLong     = errs.Define(errs.KindInvalidInput, "a reservation cannot exceed 365 nights")
	ErrUnknownState      = errs.Define(errs.KindInvalidInput, "unknown reservation state")
	ErrOverlap           = errs.Define(errs.KindConflict, "car is already booked for the requested period")
	ErrAlreadyCompleted  = errs.Define(errs.KindInvalidStateTransition, "reservation is already completed")
	ErrNotActive         = errs.Define(errs.KindInvalidStateTransition, "only an active reservation can be completed")
	ErrNotConfirmed      = errs.Define(errs.KindInvalidStateTransition, "reservation has not been confirmed")
	ErrReservationClosed = errs.Define(errs.KindInvalidStateTransition, "reservation is cancelled")
)

type Reservation struct {
	id          uuid.UUID
	carID       uuid.UUID
	userID      uuid.UUID
	period      Period
	state       State
	cancelledAt *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReservation returns a reservation in StateRequested. It becomes
// confirmed only through Confirm once availability has been checked.
func NewReservation(carID, userID uuid.UUID, period Period, now time.Time) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		carID:     carID,
		userID:    userID,
		period:    period,
		state:     StateRequested,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructReservation(
	id, carID, userID uuid.UUID,
	period Period,
	state State,
	cancelledAt, completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		carID:       carID,
		userID:      userID,
		period:      period,
		state:       state,
		cancelledAt: cancelledAt,
		completedAt: completedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Confirm moves a requested reservation to confirmed after the overlap check.
func (r *Reservation) Confirm(existing []*Reservation) error {
	if r.state != StateRequested {
		return ErrNotConfirmed
	}
	for _, e := range existing {
		if e.id == r.id || e.carID != r.carID || e.state != StateConfirmed {
			continue
		}
		if e.period.Overlaps(r.period) {
			return &OverlapError{ConflictingID: e.id}
		}
	}
	r.state = StateConfirmed
	return nil
}

// StateAt derives the lifecycle state at now from the stored state.
func (r *Reservation) StateAt(now time.Time) State {
	switch r.state {
	case StateConfirmed:
		switch {
		case !now.Before(r.period.end):
			return StateCompleted
		case !now.Before(r.period.start):
			return StateActive
		default:
			return StateConfirmed
		}
	default:
		return r.state
	}
}

// Cancel reports changed=false when the reservation was already cancelled.
func (r *Reservation) Cancel(now time.Time) (changed bool, err error) {
	switch r.StateAt(now) {
	case StateCancelled:
		return false, nil
	case StateCompleted:
		return false, ErrAlreadyCompleted
	}
	r.state = StateCancelled
	r.cancelledAt = &now
	r.updatedAt = now
	return true, nil
}

// Complete closes an active reservation before its end date.
func (r *Reservation) Complete(now time.Time) error {
	switch r.StateAt(now) {
	case StateActive:
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateCancelled:
		return ErrReservationClosed
	default:
		return ErrNotActive
	}
	r.state = StateCompleted
	r.completedAt = &now
	r.updatedAt = now
	return nil
}

// EnsureSettleable allows payment for confirmed, active or completed reservations.
func (r *Reservation) EnsureSettleable(now time.Time) error {
	switch r.StateAt(now) {
	case StateConfirmed, StateActive, StateCompleted:
		return nil
	case StateCancelled:
		return ErrReservationClosed
	default:
		return ErrNotConfirmed
	}
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) CarID() uuid.UUID        { return r.carID }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) Period() Period          { return r.period }
func (r *Reservation) StoredState() State      { return r.state }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }
func (r *Reservation) CompletedAt() *time.Time { return r.completedAt }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
