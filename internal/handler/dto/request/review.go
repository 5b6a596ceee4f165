package request

import (
	"roadready/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Rating        int       `json:"rating" binding:"required,min=1,max=5"`
	Comment       string    `json:"comment" binding:"required,max=1000"`
}

func (r CreateReviewRequest) ToCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{
		ReservationID: r.ReservationID,
		Rating:        r.Rating,
		Comment:       r.Comment,
	}
}

// UpdateReviewRequest names the review in the body. reservation_id and car_id
// are accepted only when they repeat the stored values.
type UpdateReviewRequest struct {
	ID            uuid.UUID  `json:"id" binding:"required"`
	Rating        *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment       *string    `json:"comment" binding:"omitempty,max=1000"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	CarID         *uuid.UUID `json:"car_id,omitempty"`
}

func (r UpdateReviewRequest) ToCommand() commands.UpdateReviewRequest {
	return commands.UpdateReviewRequest{
		ID:            r.ID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		ReservationID: r.ReservationID,
		CarID:         r.CarID,
	}
}
