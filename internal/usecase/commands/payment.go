package commands

import (
	"context"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/event"
	"roadready/internal/domain/payment"
	"roadready/internal/infra"
	"roadready/internal/infra/metrics"
	"roadready/internal/pkg/clock"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPaymentNotFound = errs.Define(errs.KindNotFound, "payment not found")

type SettleResult struct {
	PaymentID uuid.UUID
}

type PaymentCommands interface {
	Settle(ctx context.Context, reservationID uuid.UUID, p auth.Principal) (*SettleResult, error)
	Amend(ctx context.Context, paymentID uuid.UUID, p auth.Principal) error
}

type paymentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, clock: clk}
}

// Settle locks the reservation so a concurrent cancel cannot slip in between
// the state check and the insert. A second payment for the same reservation
// is rejected by the store.
func (uc *paymentCommandsImpl) Settle(ctx context.Context, reservationID uuid.UUID, p auth.Principal) (*SettleResult, error) {
	var settled *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().LockByID(ctx, reservationID)
		if err != nil {
			return notFoundAs(err, ErrReservationNotFound)
		}
		c, err := tx.Cars().FindByID(ctx, res.CarID())
		if err != nil {
			return notFoundAs(err, ErrCarNotFound)
		}

		now := uc.clock.Now()
		pay, err := payment.Settle(p, res, c, now)
		if err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, pay); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return payment.ErrDuplicatePayment
			}
			return err
		}

		settled = pay
		return tx.Outbox().Append(ctx, event.New(event.PaymentSettled, pay.ID(), event.PaymentPayload{
			PaymentID:     pay.ID(),
			ReservationID: pay.ReservationID(),
			UserID:        pay.UserID(),
			AmountCents:   pay.AmountCents(),
			Nights:        pay.Nights(),
			SettledAt:     pay.SettledAt(),
		}, now))
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsSettled.Inc()
	return &SettleResult{PaymentID: settled.ID()}, nil
}

// Amend exists so the API can answer change requests; a settled payment never
// changes.
func (uc *paymentCommandsImpl) Amend(ctx context.Context, paymentID uuid.UUID, p auth.Principal) error {
	if !p.IsAuthenticated() {
		return auth.ErrUnauthenticated
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := tx.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return notFoundAs(err, ErrPaymentNotFound)
		}
		return pay.Amend()
	})
}
