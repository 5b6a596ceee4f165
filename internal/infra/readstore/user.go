package readstore

import (
	"context"

	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Users, error)
	GetActiveUserByEmail(ctx context.Context, db query.DBTX, email string) (query.Users, error)
	ListUsers(ctx context.Context, db query.DBTX) ([]query.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      query.DBTX
}

func NewUserReadStore(queries UserReadQueries, db query.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserView(row), nil
}

// FindByEmail also returns the password hash, which never leaves the read store
// inside a view.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	row, err := r.queries.GetActiveUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return toUserView(row), row.PasswordHash, nil
}

func (r *UserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := r.queries.ListUsers(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	return mapRows(rows, toUserView), nil
}
