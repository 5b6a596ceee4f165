package review

import (
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/reservation"
	"roadready/internal/pkg/errs"
	"roadready/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrReservationNotEligible = errs.Define(errs.KindInvalidStateTransition, "reservation must be completed before it can be reviewed")
	ErrNotReservationOwner    = errs.Define(errs.KindForbidden, "only the renter can review this reservation")
	ErrReviewAlreadyExists    = errs.Define(errs.KindConflict, "review already exists for this reservation")
	ErrImmutableReference     = errs.Define(errs.KindInvalidInput, "reservation and car of a review cannot change")
)

type Review struct {
	id            uuid.UUID
	userID        uuid.UUID
	carID         uuid.UUID
	reservationID uuid.UUID
	rating        Rating
	comment       Comment
	createdAt     time.Time
	updatedAt     time.Time
}

// Submit runs the eligibility gate: the principal must own the reservation and
// the reservation must be completed at now. The car comes from the reservation.
func Submit(p auth.Principal, res *reservation.Reservation, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}
	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}
	if err := auth.OwnerOnly(res.UserID(), p); err != nil {
		return nil, ErrNotReservationOwner
	}
	if res.StateAt(now) != reservation.StateCompleted {
		return nil, ErrReservationNotEligible
	}

	return &Review{
		id:            uuid.New(),
		userID:        p.UserID,
		carID:         res.CarID(),
		reservationID: res.ID(),
		rating:        rating,
		comment:       comment,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructReview(id, userID, carID, reservationID uuid.UUID, rating Rating, comment Comment, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:            id,
		userID:        userID,
		carID:         carID,
		reservationID: reservationID,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Edit is the input of Revise. Nil fields keep the stored value; a non-nil
// reference must match the stored one.
type Edit struct {
	Rating        *int
	Comment       *string
	ReservationID *uuid.UUID
	CarID         *uuid.UUID
}

func (r *Review) Revise(p auth.Principal, e Edit, now time.Time) error {
	if err := auth.OwnerOrAdmin(r.userID, p); err != nil {
		return err
	}
	if patch.Differs(e.ReservationID, r.reservationID) || patch.Differs(e.CarID, r.carID) {
		return ErrImmutableReference
	}

	rating, err := NewRating(patch.Coalesce(e.Rating, r.rating.Value()))
	if err != nil {
		return err
	}
	comment, err := NewComment(patch.Coalesce(e.Comment, r.comment.String()))
	if err != nil {
		return err
	}

	r.rating, r.comment = rating, comment
	r.updatedAt = now
	return nil
}

// AuthorizeDelete allows the author or an admin.
func (r *Review) AuthorizeDelete(p auth.Principal) error {
	return auth.OwnerOrAdmin(r.userID, p)
}

func (r *Review) ID() uuid.UUID            { return r.id }
func (r *Review) UserID() uuid.UUID        { return r.userID }
func (r *Review) CarID() uuid.UUID         { return r.carID }
func (r *Review) ReservationID() uuid.UUID { return r.reservationID }
func (r *Review) Rating() Rating           { return r.rating }
func (r *Review) Comment() Comment         { return r.comment }
func (r *Review) CreatedAt() time.Time     { return r.createdAt }
func (r *Review) UpdatedAt() time.Time     { return r.updatedAt }
