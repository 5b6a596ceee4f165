// Package converter maps between domain entities and query rows.
package converter

import (
	"roadready/internal/domain/car"
	"roadready/internal/domain/payment"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/review"
	"roadready/internal/domain/user"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
)

func UserToCreateParams(u *user.User) query.CreateUserParams {
	return query.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func CarToCreateParams(c *car.Car) query.CreateCarParams {
	return query.CreateCarParams{
		ID:             c.ID(),
		Make:           c.Make().String(),
		Model:          c.Model().String(),
		Year:           int32(c.Year()), // #nosec G115 -- bounded by car.MaxYear
		DailyRateCents: c.DailyRate().Cents(),
		Status:         c.Status().String(),
		CreatedAt:      pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func CarToUpdateParams(c *car.Car) query.UpdateCarParams {
	return query.UpdateCarParams{
		ID:             c.ID(),
		Make:           c.Make().String(),
		Model:          c.Model().String(),
		Year:           int32(c.Year()), // #nosec G115 -- bounded by car.MaxYear
		DailyRateCents: c.DailyRate().Cents(),
		Status:         c.Status().String(),
		UpdatedAt:      pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func CarFromRow(row query.Cars) (*car.Car, error) {
	mk, err := car.NewName(row.Make)
	if err != nil {
		return nil, err
	}
	md, err := car.NewName(row.Model)
	if err != nil {
		return nil, err
	}
	rate, err := car.NewRate(row.DailyRateCents)
	if err != nil {
		return nil, err
	}
	return car.ReconstructCar(
		row.ID, mk, md, int(row.Year), rate, car.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func ReservationToCreateParams(r *reservation.Reservation) query.CreateReservationParams {
	return query.CreateReservationParams{
		ID:        r.ID(),
		CarID:     r.CarID(),
		UserID:    r.UserID(),
		StartDate: pgconv.TimeToPgtype(r.Period().Start()),
		EndDate:   pgconv.TimeToPgtype(r.Period().End()),
		State:     r.StoredState().String(),
		CreatedAt: pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func ReservationToStateParams(r *reservation.Reservation) query.UpdateReservationStateParams {
	return query.UpdateReservationStateParams{
		ID:          r.ID(),
		State:       r.StoredState().String(),
		CancelledAt: pgconv.TimePtrToPgtype(r.CancelledAt()),
		CompletedAt: pgconv.TimePtrToPgtype(r.CompletedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ReservationFromRow(row query.Reservations) (*reservation.Reservation, error) {
	state, err := reservation.ParseStoredState(row.State)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		row.ID, row.CarID, row.UserID,
		reservation.ReconstructPeriod(pgconv.TimeFromPgtype(row.StartDate), pgconv.TimeFromPgtype(row.EndDate)),
		state,
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.TimePtrFromPgtype(row.CompletedAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func PaymentToCreateParams(p *payment.Payment) query.CreatePaymentParams {
	return query.CreatePaymentParams{
		ID:            p.ID(),
		ReservationID: p.ReservationID(),
		UserID:        p.UserID(),
		AmountCents:   p.AmountCents(),
		Nights:        p.Nights(),
		SettledAt:     pgconv.TimeToPgtype(p.SettledAt()),
	}
}

func PaymentFromRow(row query.Payments) *payment.Payment {
	return payment.ReconstructPayment(
		row.ID, row.ReservationID, row.UserID, row.AmountCents, row.Nights,
		pgconv.TimeFromPgtype(row.SettledAt), pgconv.TimeFromPgtype(row.CreatedAt),
	)
}

func ReviewToCreateParams(r *review.Review) query.CreateReviewParams {
	return query.CreateReviewParams{
		ID:            r.ID(),
		CarID:         r.CarID(),
		UserID:        r.UserID(),
		ReservationID: r.ReservationID(),
		Rating:        int32(r.Rating().Value()), // #nosec G115 -- 1..5
		Comment:       r.Comment().String(),
		CreatedAt:     pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func ReviewToUpdateParams(r *review.Review) query.UpdateReviewParams {
	return query.UpdateReviewParams{
		ID:        r.ID(),
		Rating:    int32(r.Rating().Value()), // #nosec G115 -- 1..5
		Comment:   r.Comment().String(),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ReviewFromRow(row query.Reviews) (*review.Review, error) {
	rating, err := review.NewRating(int(row.Rating))
	if err != nil {
		return nil, err
	}
	comment, err := review.NewComment(row.Comment)
	if err != nil {
		return nil, err
	}
	return review.ReconstructReview(
		row.ID, row.UserID, row.CarID, row.ReservationID, rating, comment,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
