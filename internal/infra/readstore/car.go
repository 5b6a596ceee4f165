package readstore

import (
	"context"

	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarReadQueries interface {
	GetCarByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Cars, error)
	ListCars(ctx context.Context, db query.DBTX) ([]query.Cars, error)
}

type CarReadStore struct {
	queries CarReadQueries
	db      query.DBTX
}

func NewCarReadStore(queries CarReadQueries, db query.DBTX) *CarReadStore {
	return &CarReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CarReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CarView, error) {
	row, err := r.queries.GetCarByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get car by id", err)
	}
	return toCarView(row), nil
}

func (r *CarReadStore) List(ctx context.Context) ([]*queries.CarView, error) {
	rows, err := r.queries.ListCars(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cars", err)
	}
	return mapRows(rows, toCarView), nil
}
