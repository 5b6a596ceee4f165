package commands

import (
	"context"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/event"
	domreview "roadready/internal/domain/review"
	"roadready/internal/infra"
	"roadready/internal/infra/metrics"
	"roadready/internal/pkg/clock"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReviewNotFound = errs.Define(errs.KindNotFound, "review not found")

type SubmitReviewRequest struct {
	ReservationID uuid.UUID
	Rating        int
	Comment       string
}

// UpdateReviewRequest leaves nil fields unchanged. ReservationID and CarID may
// only repeat the stored values.
type UpdateReviewRequest struct {
	ID            uuid.UUID
	Rating        *int
	Comment       *string
	ReservationID *uuid.UUID
	CarID         *uuid.UUID
}

type SubmitReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	Submit(ctx context.Context, p auth.Principal, req SubmitReviewRequest) (*SubmitReviewResult, error)
	Update(ctx context.Context, p auth.Principal, req UpdateReviewRequest) error
	Delete(ctx context.Context, reviewID uuid.UUID, p auth.Principal) error
}

type reviewCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	invalidator CarReviewsInvalidator
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock, invalidator CarReviewsInvalidator) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk, invalidator: invalidator}
}

func (uc *reviewCommandsImpl) Submit(ctx context.Context, p auth.Principal, req SubmitReviewRequest) (*SubmitReviewResult, error) {
	var created *domreview.Review
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, req.ReservationID)
		if err != nil {
			return notFoundAs(err, ErrReservationNotFound)
		}

		now := uc.clock.Now()
		rev, err := domreview.Submit(p, res, req.Rating, req.Comment, now)
		if err != nil {
			return err
		}
		if err := tx.Reviews().Create(ctx, rev); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return domreview.ErrReviewAlreadyExists
			}
			return err
		}

		created = rev
		return tx.Outbox().Append(ctx, reviewEvent(event.ReviewSubmitted, rev, now))
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateCar(ctx, created.CarID())
	metrics.ReviewsWritten.WithLabelValues(metrics.OpCreate).Inc()
	return &SubmitReviewResult{ReviewID: created.ID()}, nil
}

func (uc *reviewCommandsImpl) Update(ctx context.Context, p auth.Principal, req UpdateReviewRequest) error {
	var carID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().LockByID(ctx, req.ID)
		if err != nil {
			return notFoundAs(err, ErrReviewNotFound)
		}

		now := uc.clock.Now()
		edit := domreview.Edit{
			Rating:        req.Rating,
			Comment:       req.Comment,
			ReservationID: req.ReservationID,
			CarID:         req.CarID,
		}
		if err := rev.Revise(p, edit, now); err != nil {
			return err
		}
		if err := tx.Reviews().Update(ctx, rev); err != nil {
			return notFoundAs(err, ErrReviewNotFound)
		}

		carID = rev.CarID()
		return tx.Outbox().Append(ctx, reviewEvent(event.ReviewUpdated, rev, now))
	})
	if err != nil {
		return err
	}

	uc.invalidator.InvalidateCar(ctx, carID)
	metrics.ReviewsWritten.WithLabelValues(metrics.OpUpdate).Inc()
	return nil
}

func (uc *reviewCommandsImpl) Delete(ctx context.Context, reviewID uuid.UUID, p auth.Principal) error {
	var carID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().LockByID(ctx, reviewID)
		if err != nil {
			return notFoundAs(err, ErrReviewNotFound)
		}
		if err := rev.AuthorizeDelete(p); err != nil {
			return err
		}
		if err := tx.Reviews().Delete(ctx, rev.ID()); err != nil {
			return notFoundAs(err, ErrReviewNotFound)
		}

		carID = rev.CarID()
		return tx.Outbox().Append(ctx, reviewEvent(event.ReviewDeleted, rev, uc.clock.Now()))
	})
	if err != nil {
		return err
	}

	uc.invalidator.InvalidateCar(ctx, carID)
	metrics.ReviewsWritten.WithLabelValues(metrics.OpDelete).Inc()
	return nil
}

func reviewEvent(t event.Type, rev *domreview.Review, now time.Time) event.Event {
	return event.New(t, rev.ID(), event.ReviewPayload{
		ReviewID:      rev.ID(),
		ReservationID: rev.ReservationID(),
		CarID:         rev.CarID(),
		UserID:        rev.UserID(),
		Rating:        rev.Rating().Value(),
	}, now)
}
