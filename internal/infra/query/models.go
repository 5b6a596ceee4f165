package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Cars struct {
	ID             uuid.UUID
	Make           string
	Model          string
	Year           int32
	DailyRateCents int64
	Status         string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type Reservations struct {
	ID          uuid.UUID
	CarID       uuid.UUID
	UserID      uuid.UUID
	StartDate   pgtype.Timestamptz
	EndDate     pgtype.Timestamptz
	State       string
	CancelledAt pgtype.Timestamptz
	CompletedAt pgtype.Timestamptz
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Payments struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	UserID        uuid.UUID
	AmountCents   int64
	Nights        int64
	SettledAt     pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
}

type Reviews struct {
	ID            uuid.UUID
	CarID         uuid.UUID
	UserID        uuid.UUID
	ReservationID uuid.UUID
	Rating        int32
	Comment       string
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type Outbox struct {
	ID          uuid.UUID
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Status      string
	Attempts    int32
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}
