package response

import (
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	UserID        uuid.UUID `json:"user_id"`
	AmountCents   int64     `json:"amount_cents"`
	Nights        int64     `json:"nights"`
	SettledAt     time.Time `json:"settled_at"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:            v.ID,
		ReservationID: v.ReservationID,
		UserID:        v.UserID,
		AmountCents:   v.AmountCents,
		Nights:        v.Nights,
		SettledAt:     v.SettledAt,
	}
}

type PaymentPageResponse struct {
	Payments   []*PaymentResponse `json:"payments"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

func FromPaymentPage(p queries.Page[*queries.PaymentView]) *PaymentPageResponse {
	res := &PaymentPageResponse{Payments: make([]*PaymentResponse, len(p.Items))}
	for i, v := range p.Items {
		res.Payments[i] = FromPaymentView(v)
	}
	if p.Next != nil {
		res.NextCursor = p.Next.After
	}
	return res
}
