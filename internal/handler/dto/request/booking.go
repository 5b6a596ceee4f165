package request

import (
	"time"

	"roadready/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateReservationRequest books [start_date, end_date). Dates are RFC 3339.
type CreateReservationRequest struct {
	CarID     uuid.UUID `json:"car_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (r CreateReservationRequest) ToCommand() commands.BookingRequest {
	return commands.BookingRequest{CarID: r.CarID, StartDate: r.StartDate, EndDate: r.EndDate}
}

type SettlePaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
}
