//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"roadready/internal/domain/user"
	"roadready/internal/pkg/config"
	"roadready/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.Audience, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	// expired well beyond the validator's clock skew allowance
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.Audience, -time.Minute)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// ForeignToken is signed with a different secret than the server's.
func (h *JWTHelper) ForeignToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret+"-other", h.cfg.Issuer, h.cfg.Audience, h.cfg.Duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
