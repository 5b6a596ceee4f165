package car

import (
	"time"

	"github.com/google/uuid"
)

type Car struct {
	id        uuid.UUID
	make      Name
	model     Name
	year      int
	dailyRate Rate
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewCar(makeName, modelName string, year int, dailyRateCents int64, now time.Time) (*Car, error) {
	mk, err := NewName(makeName)
	if err != nil {
		return nil, err
	}
	md, err := NewName(modelName)
	if err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}
	rate, err := NewRate(dailyRateCents)
	if err != nil {
		return nil, err
	}

	return &Car{
		id:        uuid.New(),
		make:      mk,
		model:     md,
		year:      year,
		dailyRate: rate,
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructCar(id uuid.UUID, makeName, modelName Name, year int, dailyRate Rate, status Status, createdAt, updatedAt time.Time) *Car {
	return &Car{
		id:        id,
		make:      makeName,
		model:     modelName,
		year:      year,
		dailyRate: dailyRate,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces the descriptive fields and the rate. Existing reservations
// keep the price they are settled at, which is read at settlement time.
func (c *Car) Update(makeName, modelName string, year int, dailyRateCents int64, now time.Time) error {
	mk, err := NewName(makeName)
	if err != nil {
		return err
	}
	md, err := NewName(modelName)
	if err != nil {
		return err
	}
	if err := validateYear(year); err != nil {
		return err
	}
	rate, err := NewRate(dailyRateCents)
	if err != nil {
		return err
	}
	c.make, c.model, c.year, c.dailyRate = mk, md, year, rate
	c.updatedAt = now
	return nil
}

// Retire takes the car out of the bookable fleet. Retiring twice is a no-op.
func (c *Car) Retire(now time.Time) {
	if c.status == StatusRetired {
		return
	}
	c.status = StatusRetired
	c.updatedAt = now
}

// EnsureBookable reports ErrCarRetired for cars that no longer take bookings.
func (c *Car) EnsureBookable() error {
	if c.status != StatusAvailable {
		return ErrCarRetired
	}
	return nil
}

func (c *Car) ID() uuid.UUID        { return c.id }
func (c *Car) Make() Name           { return c.make }
func (c *Car) Model() Name          { return c.model }
func (c *Car) Year() int            { return c.year }
func (c *Car) DailyRate() Rate      { return c.dailyRate }
func (c *Car) Status() Status       { return c.status }
func (c *Car) CreatedAt() time.Time { return c.createdAt }
func (c *Car) UpdatedAt() time.Time { return c.updatedAt }
