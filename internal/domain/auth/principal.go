package auth

import (
	"slices"

	"roadready/internal/domain/user"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrForbidden       = errs.Define(errs.KindForbidden, "operation not permitted for this user")
	ErrRoleRequired    = errs.Define(errs.KindForbidden, "required role missing")
	ErrUnauthenticated = errs.Define(errs.KindForbidden, "authenticated user required")
)

// Principal is the already authenticated caller. The core never looks at
// tokens, only at this pair.
type Principal struct {
	UserID uuid.UUID
	Roles  []user.Role
}

func NewPrincipal(userID uuid.UUID, roles ...user.Role) Principal {
	return Principal{UserID: userID, Roles: roles}
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}

func (p Principal) HasRole(role user.Role) bool {
	return slices.Contains(p.Roles, role)
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(user.RoleAdmin)
}

// Require is the explicit (requiredRole, actorRoles) -> allow/deny check run at
// the start of role-gated operations.
func Require(required user.Role, actorRoles []user.Role) error {
	if slices.Contains(actorRoles, required) {
		return nil
	}
	return errs.Wrapf(ErrRoleRequired, "role %q", required)
}

// OwnerOrAdmin allows the resource owner or any admin.
func OwnerOrAdmin(ownerID uuid.UUID, p Principal) error {
	if !p.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if p.UserID == ownerID || p.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// OwnerOnly allows nobody but the owner, admins included.
func OwnerOnly(ownerID uuid.UUID, p Principal) error {
	if !p.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if p.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
