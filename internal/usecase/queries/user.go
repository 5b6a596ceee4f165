package queries

import (
	"context"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.Define(errs.KindNotFound, "user not found")
	ErrUserInactive = errs.Define(errs.KindForbidden, "user inactive")
)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, p auth.Principal) (*UserView, error)
	GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*UserView, error)
	List(ctx context.Context, p auth.Principal) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, p auth.Principal) (*UserView, error) {
	u, err := q.find(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return u, nil
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*UserView, error) {
	if err := auth.OwnerOrAdmin(id, p); err != nil {
		return nil, err
	}
	return q.find(ctx, id)
}

func (q *userQueriesImpl) List(ctx context.Context, p auth.Principal) ([]*UserView, error) {
	if err := auth.Require(user.RoleAdmin, p.Roles); err != nil {
		return nil, err
	}
	return q.readStore.List(ctx)
}

func (q *userQueriesImpl) find(ctx context.Context, id uuid.UUID) (*UserView, error) {
	u, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
