//go:build unit || e2e

package builder

import (
	"time"

	"roadready/internal/domain/payment"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	UserID        uuid.UUID
	AmountCents   int64
	Nights        int64
	SettledAt     time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		UserID:        uuid.New(),
		AmountCents:   15000,
		Nights:        3,
		SettledAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

func (b *PaymentBuilder) BuildStored() *payment.Payment {
	return payment.ReconstructPayment(b.ID, b.ReservationID, b.UserID, b.AmountCents, b.Nights, b.SettledAt, b.SettledAt)
}

func (b *PaymentBuilder) BuildView() *queries.PaymentView {
	return &queries.PaymentView{
		ID:            b.ID,
		ReservationID: b.ReservationID,
		UserID:        b.UserID,
		AmountCents:   b.AmountCents,
		Nights:        b.Nights,
		SettledAt:     b.SettledAt,
		CreatedAt:     b.SettledAt,
	}
}

func (b *PaymentBuilder) WithReservationID(id uuid.UUID) *PaymentBuilder {
	b.ReservationID = id
	return b
}

func (b *PaymentBuilder) WithUserID(id uuid.UUID) *PaymentBuilder {
	b.UserID = id
	return b
}
