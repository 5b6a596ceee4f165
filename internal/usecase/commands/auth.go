package commands

import (
	"context"
	"log/slog"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/pkg/clock"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken      = errs.Define(errs.KindConflict, "email is already registered")
	ErrUserInactive    = errs.Define(errs.KindForbidden, "user is inactive")
	ErrTokenGeneration = errs.New("token generation failed")
)

type RegisterRequest struct {
	Email    string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

type RegisterResult struct {
	UserID uuid.UUID
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	clock  clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, tokens TokenIssuer, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:    uow,
		tokens: tokens,
		clock:  clk,
	}
}

// Register always creates a customer; admins are provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	credentials, err := auth.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	hash, err := credentials.Hash()
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(credentials.Email(), hash, user.RoleCustomer, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResult{UserID: u.ID()}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	snapshot, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(snapshot.Role)
	if err != nil {
		return nil, err
	}

	token, err := a.tokens.GenerateToken(snapshot.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, snapshot.ID, a.clock.Now())
	})
	if err != nil {
		// login already succeeded
		slog.WarnContext(ctx, "failed to update last login", "user_id", snapshot.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:      snapshot.ID,
		Role:        role,
		AccessToken: token,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*shared.UserSnapshot, error) {
	snapshot, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same answer as a wrong password so emails cannot be enumerated
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if !snapshot.IsActive {
		return nil, ErrUserInactive
	}

	if err := credentials.Check(snapshot.PasswordHash); err != nil {
		return nil, err
	}

	return snapshot, nil
}
