package queries

import (
	"context"

	"roadready/internal/infra"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCarNotFound = errs.Define(errs.KindNotFound, "car not found")

type CarReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CarView, error)
	List(ctx context.Context) ([]*CarView, error)
}

type CarQueries interface {
	List(ctx context.Context) ([]*CarView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CarView, error)
}

type carQueriesImpl struct {
	readStore CarReadStore
}

func NewCarQueries(readStore CarReadStore) CarQueries {
	return &carQueriesImpl{readStore: readStore}
}

func (q *carQueriesImpl) List(ctx context.Context) ([]*CarView, error) {
	return q.readStore.List(ctx)
}

func (q *carQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CarView, error) {
	c, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return c, nil
}
