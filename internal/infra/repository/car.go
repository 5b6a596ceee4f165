package repository

import (
	"context"

	"roadready/internal/domain/car"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository/converter"
	"roadready/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CarWriteQueries interface {
	CreateCar(ctx context.Context, db query.DBTX, arg query.CreateCarParams) (query.Cars, error)
	GetCarByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Cars, error)
	GetCarForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Cars, error)
	UpdateCar(ctx context.Context, db query.DBTX, arg query.UpdateCarParams) (int64, error)
}

type CarRepository struct {
	queries CarWriteQueries
	db      query.DBTX
}

func NewCarRepository(queries CarWriteQueries, db query.DBTX) *CarRepository {
	return &CarRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CarRepository) Create(ctx context.Context, c *car.Car) error {
	if _, err := r.queries.CreateCar(ctx, r.db, converter.CarToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create car", err)
	}
	return nil
}

func (r *CarRepository) FindByID(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	row, err := r.queries.GetCarByID(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("car", err)
	}
	return mapCar(row)
}

func (r *CarRepository) LockByID(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	row, err := r.queries.GetCarForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, wrapFind("car", err)
	}
	return mapCar(row)
}

func (r *CarRepository) Update(ctx context.Context, c *car.Car) error {
	n, err := r.queries.UpdateCar(ctx, r.db, converter.CarToUpdateParams(c))
	if err != nil {
		return infra.WrapRepoErr("failed to update car", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("car not found", nil, infra.KindNotFound)
	}
	return nil
}

func mapCar(row query.Cars) (*car.Car, error) {
	c, err := converter.CarFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored car is invalid", err, infra.KindDBFailure)
	}
	return c, nil
}

func wrapFind(entity string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to find "+entity, err)
}
