package response

import (
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReservationResponse reports the state computed at read time.
type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	CarID       uuid.UUID  `json:"car_id"`
	UserID      uuid.UUID  `json:"user_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	State       string     `json:"state"`
	Nights      int64      `json:"nights"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:          v.ID,
		CarID:       v.CarID,
		UserID:      v.UserID,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
		State:       v.State,
		Nights:      v.Nights,
		CancelledAt: v.CancelledAt,
		CompletedAt: v.CompletedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type ReservationPageResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   string                 `json:"next_cursor,omitempty"`
}

func FromReservationPage(p queries.Page[*queries.ReservationView]) *ReservationPageResponse {
	res := &ReservationPageResponse{Reservations: make([]*ReservationResponse, len(p.Items))}
	for i, v := range p.Items {
		res.Reservations[i] = FromReservationView(v)
	}
	if p.Next != nil {
		res.NextCursor = p.Next.After
	}
	return res
}
