//go:build unit || e2e

package builder

import (
	"time"

	"roadready/internal/domain/reservation"
	reqdto "roadready/internal/handler/dto/request"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	UserID    uuid.UUID
	Start     time.Time
	End       time.Time
	State     reservation.State
	CreatedAt time.Time
}

// NewReservationBuilder books 2025-01-01..2025-01-04, three nights.
func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:        uuid.New(),
		CarID:     uuid.New(),
		UserID:    uuid.New(),
		Start:     start,
		End:       start.Add(3 * reservation.Day),
		State:     reservation.StateConfirmed,
		CreatedAt: start.Add(-7 * reservation.Day),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods

// BuildDomain runs the requested-period validation as of CreatedAt.
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	period, err := reservation.NewPeriod(b.Start, b.End, b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(b.CarID, b.UserID, period, b.CreatedAt), nil
}

func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	var cancelledAt, completedAt *time.Time
	switch b.State {
	case reservation.StateCancelled:
		t := b.CreatedAt
		cancelledAt = &t
	case reservation.StateCompleted:
		t := b.End
		completedAt = &t
	}
	return reservation.ReconstructReservation(
		b.ID, b.CarID, b.UserID,
		reservation.ReconstructPeriod(b.Start, b.End),
		b.State, cancelledAt, completedAt,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildView(now time.Time) *queries.ReservationView {
	stored := b.BuildStored()
	return &queries.ReservationView{
		ID:          b.ID,
		CarID:       b.CarID,
		UserID:      b.UserID,
		StartDate:   b.Start,
		EndDate:     b.End,
		State:       stored.StateAt(now).String(),
		StoredState: b.State.String(),
		Nights:      stored.Period().Nights(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CarID:     b.CarID,
		StartDate: b.Start,
		EndDate:   b.End,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithCarID(id uuid.UUID) *ReservationBuilder {
	b.CarID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithPeriod(start, end time.Time) *ReservationBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *ReservationBuilder) WithState(s reservation.State) *ReservationBuilder {
	b.State = s
	return b
}

func (b *ReservationBuilder) WithCreatedAt(t time.Time) *ReservationBuilder {
	b.CreatedAt = t
	return b
}
