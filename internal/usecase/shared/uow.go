package shared

import (
	"context"
	"time"

	"roadready/internal/domain/car"
	"roadready/internal/domain/event"
	"roadready/internal/domain/payment"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/review"
	"roadready/internal/domain/user"
	"roadready/internal/infra/query"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx hands out repositories bound to one open transaction.
type Tx interface {
	Cars() CarRepository
	Users() UserRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Reviews() ReviewRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() query.DBTX
}

type CommandReads interface {
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type CarRepository interface {
	Create(ctx context.Context, c *car.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*car.Car, error)
	// LockByID takes a row lock held until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*car.Car, error)
	Update(ctx context.Context, c *car.Car) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindOverlapping returns confirmed reservations of carID intersecting period.
	FindOverlapping(ctx context.Context, carID uuid.UUID, period reservation.Period) ([]*reservation.Reservation, error)
	UpdateState(ctx context.Context, r *reservation.Reservation) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	LockByID(ctx context.Context, id uuid.UUID) (*review.Review, error)
	Update(ctx context.Context, r *review.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OutboxRepository interface {
	Append(ctx context.Context, e event.Event) error
}
