//go:build unit || e2e

package builder

import (
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/reservation"
	domreview "roadready/internal/domain/review"
	"roadready/internal/domain/user"
	reqdto "roadready/internal/handler/dto/request"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CarID         uuid.UUID
	ReservationID uuid.UUID
	Rating        int
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	return &ReviewBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		CarID:         uuid.New(),
		ReservationID: uuid.New(),
		Rating:        5,
		Comment:       "Excellent car!",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods

// BuildDomain submits against a reservation that ended before CreatedAt.
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	res := NewReservationBuilder().
		WithID(r.ReservationID).
		WithCarID(r.CarID).
		WithUserID(r.UserID).
		BuildStored()
	if !r.CreatedAt.After(res.Period().End()) {
		res = reservation.ReconstructReservation(res.ID(), res.CarID(), res.UserID(),
			reservation.ReconstructPeriod(r.CreatedAt.Add(-3*reservation.Day), r.CreatedAt.Add(-reservation.Day)),
			reservation.StateConfirmed, nil, nil, r.CreatedAt, r.CreatedAt)
	}
	return domreview.Submit(auth.NewPrincipal(r.UserID, user.RoleCustomer), res, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) BuildStored() *domreview.Review {
	rating, _ := domreview.NewRating(r.Rating)
	comment, _ := domreview.NewComment(r.Comment)
	return domreview.ReconstructReview(r.ID, r.UserID, r.CarID, r.ReservationID, rating, comment, r.CreatedAt, r.UpdatedAt)
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		ReservationID: r.ReservationID,
		Rating:        r.Rating,
		Comment:       r.Comment,
	}
}

func (r *ReviewBuilder) BuildUpdateRequestDTO() reqdto.UpdateReviewRequest {
	rating := r.Rating
	comment := r.Comment
	return reqdto.UpdateReviewRequest{
		ID:      r.ID,
		Rating:  &rating,
		Comment: &comment,
	}
}

func (r *ReviewBuilder) BuildViewQuery() *queries.ReviewView {
	return &queries.ReviewView{
		ID:            r.ID,
		UserID:        r.UserID,
		CarID:         r.CarID,
		ReservationID: r.ReservationID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithID(id uuid.UUID) *ReviewBuilder {
	r.ID = id
	return r
}

func (r *ReviewBuilder) WithUserID(userID uuid.UUID) *ReviewBuilder {
	r.UserID = userID
	return r
}

func (r *ReviewBuilder) WithCarID(carID uuid.UUID) *ReviewBuilder {
	r.CarID = carID
	return r
}

func (r *ReviewBuilder) WithReservationID(reservationID uuid.UUID) *ReviewBuilder {
	r.ReservationID = reservationID
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithCreatedAt(createdAt time.Time) *ReviewBuilder {
	r.CreatedAt = createdAt
	r.UpdatedAt = createdAt
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Comment = "Brakes squealed the whole trip"
	return r
}
