package queries

import (
	"time"

	"github.com/google/uuid"
)

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CarView struct {
	ID             uuid.UUID `json:"id"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReservationView carries both the stored state and the state computed at
// read time.
type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	CarID       uuid.UUID  `json:"car_id"`
	UserID      uuid.UUID  `json:"user_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	StoredState string     `json:"-"`
	State       string     `json:"state"`
	Nights      int64      `json:"nights"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PaymentView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	AmountCents   int64     `json:"amount_cents"`
	Nights        int64     `json:"nights"`
	SettledAt     time.Time `json:"settled_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReviewView struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CarID         uuid.UUID `json:"car_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CarReviews is a car together with its reviews ordered by (created_at, id).
type CarReviews struct {
	Car     *CarView      `json:"car"`
	Reviews []*ReviewView `json:"reviews"`
}
