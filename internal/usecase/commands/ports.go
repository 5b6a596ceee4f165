package commands

import (
	"context"
	"time"

	"roadready/internal/domain/user"
	"roadready/internal/infra"

	"github.com/google/uuid"
)

// CarReviewsInvalidator drops cached review listings after a write commits.
type CarReviewsInvalidator interface {
	InvalidateCar(ctx context.Context, carID uuid.UUID)
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
	TokenDuration() time.Duration
}

// notFoundAs replaces a store miss with the caller's domain sentinel.
func notFoundAs(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return err
}
