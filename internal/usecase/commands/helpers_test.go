//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/car"
	"roadready/internal/domain/user"
	"roadready/internal/pkg/clock"
	"roadready/tests/common/builder"
	"roadready/tests/common/memstore"

	"github.com/google/uuid"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store    *memstore.Store
	clock    *clock.Frozen
	customer auth.Principal
	other    auth.Principal
	admin    auth.Principal
	car      *car.Car
}

// newFixture seeds one available car at 50.00/day with the clock on 2024-12-31.
func newFixture() *fixture {
	f := &fixture{
		store:    memstore.New(),
		clock:    clock.NewFrozen(day(1).Add(-24 * time.Hour)),
		customer: auth.NewPrincipal(uuid.New(), user.RoleCustomer),
		other:    auth.NewPrincipal(uuid.New(), user.RoleCustomer),
		admin:    auth.NewPrincipal(uuid.New(), user.RoleAdmin),
		car:      builder.NewCarBuilder().WithDailyRate(5000).BuildStored(),
	}
	f.store.PutCar(f.car)
	return f
}

type recordingInvalidator struct {
	mu   sync.Mutex
	cars []uuid.UUID
}

func (r *recordingInvalidator) InvalidateCar(_ context.Context, carID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars = append(r.cars, carID)
}

func (r *recordingInvalidator) Invalidated() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.cars...)
}
