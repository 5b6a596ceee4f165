package repository

import (
	"context"
	"time"

	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/infra/repository/converter"
	"roadready/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db query.DBTX, arg query.CreateUserParams) (query.Users, error)
	UpdateUserLastLogin(ctx context.Context, db query.DBTX, id uuid.UUID, at pgtype.Timestamptz) error
}

type UserRepository struct {
	queries UserWriteQueries
	db      query.DBTX
}

func NewUserRepository(queries UserWriteQueries, db query.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.queries.CreateUser(ctx, r.db, converter.UserToCreateParams(u)); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.queries.UpdateUserLastLogin(ctx, r.db, userID, pgconv.TimeToPgtype(at)); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
