package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ReservationConfirmed Type = "reservation.confirmed"
	ReservationCancelled Type = "reservation.cancelled"
	ReservationCompleted Type = "reservation.completed"
	PaymentSettled       Type = "payment.settled"
	ReviewSubmitted      Type = "review.submitted"
	ReviewUpdated        Type = "review.updated"
	ReviewDeleted        Type = "review.deleted"
)

const Version = 1

// Event is a state change recorded in the outbox in the same transaction.
type Event struct {
	ID          uuid.UUID
	Type        Type
	AggregateID uuid.UUID
	Payload     any
	OccurredAt  time.Time
}

func New(t Type, aggregateID uuid.UUID, payload any, now time.Time) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  now,
	}
}

type ReservationPayload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CarID         uuid.UUID `json:"car_id"`
	UserID        uuid.UUID `json:"user_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	State         string    `json:"state"`
}

type PaymentPayload struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	AmountCents   int64     `json:"amount_cents"`
	Nights        int64     `json:"nights"`
	SettledAt     time.Time `json:"settled_at"`
}

type ReviewPayload struct {
	ReviewID      uuid.UUID `json:"review_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	CarID         uuid.UUID `json:"car_id"`
	UserID        uuid.UUID `json:"user_id"`
	Rating        int       `json:"rating,omitempty"`
}
