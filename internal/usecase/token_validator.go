package usecase

import (
	"roadready/internal/domain/auth"
	"roadready/internal/domain/user"
	"roadready/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the principal the core operations
// consume.
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return auth.Principal{}, err
	}

	return auth.NewPrincipal(claims.UserID, role), nil
}
