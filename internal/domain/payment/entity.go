package payment

import (
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/car"
	"roadready/internal/domain/reservation"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotReservationOwner = errs.Define(errs.KindForbidden, "only the renter can pay for this reservation")
	ErrDuplicatePayment    = errs.Define(errs.KindConflict, "reservation is already settled")
	ErrImmutableRecord     = errs.Define(errs.KindImmutableRecord, "settled payments cannot be changed")
	ErrCarMismatch         = errs.Define(errs.KindInvalidInput, "car does not match reservation")
)

// Quote is the price of a reservation at the car's daily rate.
type Quote struct {
	Nights      int64
	AmountCents int64
}

func QuoteFor(res *reservation.Reservation, c *car.Car) (Quote, error) {
	nights := res.Period().Nights()
	amount, err := c.DailyRate().Times(nights)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Nights: nights, AmountCents: amount}, nil
}

type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	userID        uuid.UUID
	amountCents   int64
	nights        int64
	settledAt     time.Time
	createdAt     time.Time
}

// Settle builds the payment for res. Uniqueness per reservation is left to
// the store.
func Settle(p auth.Principal, res *reservation.Reservation, c *car.Car, now time.Time) (*Payment, error) {
	if err := auth.OwnerOnly(res.UserID(), p); err != nil {
		return nil, ErrNotReservationOwner
	}
	if c.ID() != res.CarID() {
		return nil, ErrCarMismatch
	}
	if err := res.EnsureSettleable(now); err != nil {
		return nil, err
	}

	q, err := QuoteFor(res, c)
	if err != nil {
		return nil, err
	}
	return &Payment{
		id:            uuid.New(),
		reservationID: res.ID(),
		userID:        res.UserID(),
		amountCents:   q.AmountCents,
		nights:        q.Nights,
		settledAt:     now,
		createdAt:     now,
	}, nil
}

func ReconstructPayment(id, reservationID, userID uuid.UUID, amountCents, nights int64, settledAt, createdAt time.Time) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		userID:        userID,
		amountCents:   amountCents,
		nights:        nights,
		settledAt:     settledAt,
		createdAt:     createdAt,
	}
}

// Amend always fails: a payment is settled from the moment it exists.
func (p *Payment) Amend() error {
	return ErrImmutableRecord
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) UserID() uuid.UUID        { return p.userID }
func (p *Payment) AmountCents() int64       { return p.amountCents }
func (p *Payment) Nights() int64            { return p.nights }
func (p *Payment) SettledAt() time.Time     { return p.settledAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
