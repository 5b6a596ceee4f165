// Package jwt issues and verifies the HS256 access tokens carried in the
// access_token cookie or an Authorization bearer header.
package jwt

import (
	"errors"
	"time"

	"roadready/internal/domain/user"
	"roadready/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrExpiredToken = errs.New("token expired")
)

// clockSkew tolerates small drift between API replicas.
const clockSkew = 5 * time.Second

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	parser   *jwt.Parser
}

func NewService(secret, issuer, audience string, ttl time.Duration) *Service {
	return &Service{
		key:      []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// TokenDuration is also used as the cookie Max-Age.
func (s *Service) TokenDuration() time.Duration { return s.ttl }

func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", errs.Wrap(err, "sign access token")
	}
	return signed, nil
}

// ValidateToken returns ErrExpiredToken for a stale but otherwise genuine
// token and ErrInvalidToken for everything else. Parser detail is dropped.
func (s *Service) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.UserID == uuid.Nil:
		return nil, ErrInvalidToken
	}
	return claims, nil
}
