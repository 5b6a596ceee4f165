//go:build unit

package memstore

import (
	"context"
	"time"

	"roadready/internal/domain/car"
	"roadready/internal/domain/event"
	"roadready/internal/domain/payment"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/review"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	store *Store
	data  *state
}

func (t *memTx) Cars() shared.CarRepository                 { return carRepo{t} }
func (t *memTx) Users() shared.UserRepository               { return userRepo{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t} }
func (t *memTx) Payments() shared.PaymentRepository         { return paymentRepo{t} }
func (t *memTx) Reviews() shared.ReviewRepository           { return reviewRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t} }
func (t *memTx) Reads() shared.CommandReads                 { return commandReads{store: t.store, data: t.data} }
func (t *memTx) DB() query.DBTX                             { return nil }

func (t *memTx) fail(op string) error {
	return t.store.takeFailure(op)
}

type carRepo struct{ tx *memTx }

func (r carRepo) Create(_ context.Context, c *car.Car) error {
	if err := r.tx.fail("cars.create"); err != nil {
		return err
	}
	if _, ok := r.tx.data.cars[c.ID()]; ok {
		return violation(infra.KindDuplicateKey, "cars_pkey")
	}
	r.tx.data.cars[c.ID()] = cloneCar(c)
	return nil
}

func (r carRepo) FindByID(_ context.Context, id uuid.UUID) (*car.Car, error) {
	if err := r.tx.fail("cars.find"); err != nil {
		return nil, err
	}
	c, ok := r.tx.data.cars[id]
	if !ok {
		return nil, notFound("car")
	}
	return cloneCar(c), nil
}

func (r carRepo) LockByID(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	return r.FindByID(ctx, id)
}

func (r carRepo) Update(_ context.Context, c *car.Car) error {
	if err := r.tx.fail("cars.update"); err != nil {
		return err
	}
	if _, ok := r.tx.data.cars[c.ID()]; !ok {
		return notFound("car")
	}
	r.tx.data.cars[c.ID()] = cloneCar(c)
	return nil
}

type userRepo struct{ tx *memTx }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.fail("users.create"); err != nil {
		return err
	}
	for _, existing := range r.tx.data.users {
		if existing.IsActive() && existing.Email().Value() == u.Email().Value() {
			return violation(infra.KindDuplicateKey, "users_email_active_key")
		}
	}
	r.tx.data.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.tx.fail("users.update_last_login"); err != nil {
		return err
	}
	u, ok := r.tx.data.users[userID]
	if !ok {
		return notFound("user")
	}
	r.tx.data.users[userID] = user.ReconstructUser(u.ID(), u.Email(), u.PasswordHash(), u.Role(), &at, u.IsActive(), u.CreatedAt(), at)
	return nil
}

type reservationRepo struct{ tx *memTx }

// Create applies the exclusion rule: confirmed reservations of one car never
// intersect.
func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.fail("reservations.create"); err != nil {
		return err
	}
	if _, ok := r.tx.data.cars[res.CarID()]; !ok {
		return violation(infra.KindForeignKeyViolated, "reservations_car_id_fkey")
	}
	if res.StoredState() == reservation.StateConfirmed {
		for _, e := range r.tx.data.reservations {
			if e.CarID() == res.CarID() && e.StoredState() == reservation.StateConfirmed && e.Period().Overlaps(res.Period()) {
				return violation(infra.KindExclusionViolated, "reservations_no_overlap")
			}
		}
	}
	r.tx.data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if err := r.tx.fail("reservations.find"); err != nil {
		return nil, err
	}
	res, ok := r.tx.data.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return cloneReservation(res), nil
}

func (r reservationRepo) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r reservationRepo) FindOverlapping(_ context.Context, carID uuid.UUID, period reservation.Period) ([]*reservation.Reservation, error) {
	if err := r.tx.fail("reservations.find_overlapping"); err != nil {
		return nil, err
	}
	var out []*reservation.Reservation
	for _, e := range r.tx.data.reservations {
		if e.CarID() == carID && e.StoredState() == reservation.StateConfirmed && e.Period().Overlaps(period) {
			out = append(out, cloneReservation(e))
		}
	}
	return out, nil
}

func (r reservationRepo) UpdateState(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.fail("reservations.update_state"); err != nil {
		return err
	}
	if _, ok := r.tx.data.reservations[res.ID()]; !ok {
		return notFound("reservation")
	}
	r.tx.data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

type paymentRepo struct{ tx *memTx }

func (r paymentRepo) Create(_ context.Context, p *payment.Payment) error {
	if err := r.tx.fail("payments.create"); err != nil {
		return err
	}
	for _, existing := range r.tx.data.payments {
		if existing.ReservationID() == p.ReservationID() {
			return violation(infra.KindDuplicateKey, "payments_reservation_id_key")
		}
	}
	r.tx.data.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r paymentRepo) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.tx.data.payments[id]
	if !ok {
		return nil, notFound("payment")
	}
	return clonePayment(p), nil
}

type reviewRepo struct{ tx *memTx }

func (r reviewRepo) Create(_ context.Context, rev *review.Review) error {
	if err := r.tx.fail("reviews.create"); err != nil {
		return err
	}
	for _, existing := range r.tx.data.reviews {
		if existing.ReservationID() == rev.ReservationID() {
			return violation(infra.KindDuplicateKey, "reviews_reservation_id_key")
		}
	}
	r.tx.data.reviews[rev.ID()] = cloneReview(rev)
	return nil
}

func (r reviewRepo) LockByID(_ context.Context, id uuid.UUID) (*review.Review, error) {
	rev, ok := r.tx.data.reviews[id]
	if !ok {
		return nil, notFound("review")
	}
	return cloneReview(rev), nil
}

func (r reviewRepo) Update(_ context.Context, rev *review.Review) error {
	if err := r.tx.fail("reviews.update"); err != nil {
		return err
	}
	if _, ok := r.tx.data.reviews[rev.ID()]; !ok {
		return notFound("review")
	}
	r.tx.data.reviews[rev.ID()] = cloneReview(rev)
	return nil
}

func (r reviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.fail("reviews.delete"); err != nil {
		return err
	}
	if _, ok := r.tx.data.reviews[id]; !ok {
		return notFound("review")
	}
	delete(r.tx.data.reviews, id)
	return nil
}

type outboxRepo struct{ tx *memTx }

func (r outboxRepo) Append(_ context.Context, e event.Event) error {
	if err := r.tx.fail("outbox.append"); err != nil {
		return err
	}
	r.tx.data.outbox = append(r.tx.data.outbox, e)
	return nil
}
