package commands

import (
	"context"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/car"
	"roadready/internal/domain/user"
	"roadready/internal/pkg/clock"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

type CarInput struct {
	Make           string
	Model          string
	Year           int
	DailyRateCents int64
}

type CarResult struct {
	CarID uuid.UUID
}

// CarCommands are fleet management operations reserved for admins.
type CarCommands interface {
	Create(ctx context.Context, p auth.Principal, in CarInput) (*CarResult, error)
	Update(ctx context.Context, carID uuid.UUID, p auth.Principal, in CarInput) error
	Retire(ctx context.Context, carID uuid.UUID, p auth.Principal) error
}

type carCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	invalidator CarReviewsInvalidator
}

func NewCarCommands(uow shared.UnitOfWork, clk clock.Clock, invalidator CarReviewsInvalidator) CarCommands {
	return &carCommandsImpl{uow: uow, clock: clk, invalidator: invalidator}
}

func (uc *carCommandsImpl) Create(ctx context.Context, p auth.Principal, in CarInput) (*CarResult, error) {
	if err := auth.Require(user.RoleAdmin, p.Roles); err != nil {
		return nil, err
	}

	c, err := car.NewCar(in.Make, in.Model, in.Year, in.DailyRateCents, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cars().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return &CarResult{CarID: c.ID()}, nil
}

// Update reprices future bookings only; settled payments keep their amount.
func (uc *carCommandsImpl) Update(ctx context.Context, carID uuid.UUID, p auth.Principal, in CarInput) error {
	if err := auth.Require(user.RoleAdmin, p.Roles); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cars().LockByID(ctx, carID)
		if err != nil {
			return notFoundAs(err, ErrCarNotFound)
		}
		if err := c.Update(in.Make, in.Model, in.Year, in.DailyRateCents, uc.clock.Now()); err != nil {
			return err
		}
		return notFoundAs(tx.Cars().Update(ctx, c), ErrCarNotFound)
	})
	if err != nil {
		return err
	}
	uc.invalidator.InvalidateCar(ctx, carID)
	return nil
}

// Retire keeps existing reservations; the car only stops accepting new ones.
func (uc *carCommandsImpl) Retire(ctx context.Context, carID uuid.UUID, p auth.Principal) error {
	if err := auth.Require(user.RoleAdmin, p.Roles); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cars().LockByID(ctx, carID)
		if err != nil {
			return notFoundAs(err, ErrCarNotFound)
		}
		c.Retire(uc.clock.Now())
		return notFoundAs(tx.Cars().Update(ctx, c), ErrCarNotFound)
	})
	if err != nil {
		return err
	}
	uc.invalidator.InvalidateCar(ctx, carID)
	return nil
}
