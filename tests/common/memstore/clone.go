//go:build unit

package memstore

import (
	"time"

	"roadready/internal/domain/car"
	"roadready/internal/domain/payment"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/review"
	"roadready/internal/domain/user"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneUser(u *user.User) *user.User {
	return user.ReconstructUser(u.ID(), u.Email(), u.PasswordHash(), u.Role(), cloneTime(u.LastLogin()), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
}

func cloneCar(c *car.Car) *car.Car {
	return car.ReconstructCar(c.ID(), c.Make(), c.Model(), c.Year(), c.DailyRate(), c.Status(), c.CreatedAt(), c.UpdatedAt())
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.CarID(), r.UserID(), r.Period(), r.StoredState(),
		cloneTime(r.CancelledAt()), cloneTime(r.CompletedAt()), r.CreatedAt(), r.UpdatedAt(),
	)
}

func clonePayment(p *payment.Payment) *payment.Payment {
	return payment.ReconstructPayment(p.ID(), p.ReservationID(), p.UserID(), p.AmountCents(), p.Nights(), p.SettledAt(), p.CreatedAt())
}

func cloneReview(r *review.Review) *review.Review {
	return review.ReconstructReview(r.ID(), r.UserID(), r.CarID(), r.ReservationID(), r.Rating(), r.Comment(), r.CreatedAt(), r.UpdatedAt())
}
