//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for command tests. It
// applies the same uniqueness and exclusion rules as the schema and reports
// violations as infra repository errors.
package memstore

import (
	"context"
	"sync"

	"roadready/internal/domain/car"
	"roadready/internal/domain/event"
	"roadready/internal/domain/payment"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/review"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/infra/query"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var errStore = errs.New("memstore: injected failure")

type state struct {
	users        map[uuid.UUID]*user.User
	cars         map[uuid.UUID]*car.Car
	reservations map[uuid.UUID]*reservation.Reservation
	payments     map[uuid.UUID]*payment.Payment
	reviews      map[uuid.UUID]*review.Review
	outbox       []event.Event
}

func (s state) clone() state {
	c := state{
		users:        make(map[uuid.UUID]*user.User, len(s.users)),
		cars:         make(map[uuid.UUID]*car.Car, len(s.cars)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		payments:     make(map[uuid.UUID]*payment.Payment, len(s.payments)),
		reviews:      make(map[uuid.UUID]*review.Review, len(s.reviews)),
		outbox:       append([]event.Event(nil), s.outbox...),
	}
	for k, v := range s.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range s.cars {
		c.cars[k] = cloneCar(v)
	}
	for k, v := range s.reservations {
		c.reservations[k] = cloneReservation(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	for k, v := range s.reviews {
		c.reviews[k] = cloneReview(v)
	}
	return c
}

// Store serializes units of work with one mutex, which stands in for the row
// locks the real store takes.
type Store struct {
	mu       sync.Mutex
	data     state
	failures map[string]error
}

func New() *Store {
	return &Store{
		data: state{
			users:        map[uuid.UUID]*user.User{},
			cars:         map[uuid.UUID]*car.Car{},
			reservations: map[uuid.UUID]*reservation.Reservation{},
			payments:     map[uuid.UUID]*payment.Payment{},
			reviews:      map[uuid.UUID]*review.Review{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes the named operation, e.g. "reservations.create", fail once with
// a store failure.
func (s *Store) FailOn(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = infra.WrapRepoErr("injected", errStore, infra.KindDBFailure)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, &memTx{store: s, data: &work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return commandReads{store: s}
}

// Seeding and inspection helpers. They bypass the unit of work.

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID()] = cloneUser(u)
}

func (s *Store) PutCar(c *car.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.cars[c.ID()] = cloneCar(c)
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.reservations[r.ID()] = cloneReservation(r)
}

func (s *Store) PutReview(r *review.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.reviews[r.ID()] = cloneReview(r)
}

func (s *Store) Car(id uuid.UUID) (*car.Car, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.cars[id]
	if !ok {
		return nil, false
	}
	return cloneCar(c), true
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reservations[id]
	if !ok {
		return nil, false
	}
	return cloneReservation(r), true
}

func (s *Store) Review(id uuid.UUID) (*review.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.reviews[id]
	if !ok {
		return nil, false
	}
	return cloneReview(r), true
}

func (s *Store) Payments() []*payment.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*payment.Payment, 0, len(s.data.payments))
	for _, p := range s.data.payments {
		out = append(out, clonePayment(p))
	}
	return out
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.data.reservations))
	for _, r := range s.data.reservations {
		out = append(out, cloneReservation(r))
	}
	return out
}

func (s *Store) Users() []*user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*user.User, 0, len(s.data.users))
	for _, u := range s.data.users {
		out = append(out, cloneUser(u))
	}
	return out
}

func (s *Store) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.data.outbox...)
}

func (s *Store) EventTypes() []event.Type {
	events := s.Events()
	types := make([]event.Type, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// takeFailure must be called with s.mu held.
func (s *Store) takeFailure(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", pgx.ErrNoRows, infra.KindNotFound)
}

func violation(kind infra.RepositoryErrorKind, constraint string) error {
	return infra.WrapRepoErr("constraint violated", errs.New(constraint), kind)
}

type commandReads struct {
	store *Store
	data  *state
}

func (r commandReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	data := r.data
	if data == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		data = &r.store.data
	}
	for _, u := range data.users {
		if u.IsActive() && u.Email().Value() == email {
			return &shared.UserSnapshot{
				ID:           u.ID(),
				Email:        u.Email().Value(),
				PasswordHash: u.PasswordHash(),
				Role:         u.Role().String(),
				IsActive:     u.IsActive(),
			}, nil
		}
	}
	return nil, notFound("user")
}
