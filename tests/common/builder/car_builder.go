//go:build unit || e2e

package builder

import (
	"time"

	"roadready/internal/domain/car"
	reqdto "roadready/internal/handler/dto/request"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarBuilder struct {
	ID             uuid.UUID
	Make           string
	Model          string
	Year           int
	DailyRateCents int64
	Status         car.Status
	Now            time.Time
}

func NewCarBuilder() *CarBuilder {
	return &CarBuilder{
		ID:             uuid.New(),
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2022,
		DailyRateCents: 5000,
		Status:         car.StatusAvailable,
		Now:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *CarBuilder) With(mutate func(*CarBuilder)) *CarBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CarBuilder) BuildDomain() (*car.Car, error) {
	return car.NewCar(b.Make, b.Model, b.Year, b.DailyRateCents, b.Now)
}

func (b *CarBuilder) BuildStored() *car.Car {
	mk, _ := car.NewName(b.Make)
	md, _ := car.NewName(b.Model)
	rate, _ := car.NewRate(b.DailyRateCents)
	return car.ReconstructCar(b.ID, mk, md, b.Year, rate, b.Status, b.Now, b.Now)
}

func (b *CarBuilder) BuildView() *queries.CarView {
	return &queries.CarView{
		ID:             b.ID,
		Make:           b.Make,
		Model:          b.Model,
		Year:           b.Year,
		DailyRateCents: b.DailyRateCents,
		Status:         b.Status.String(),
		CreatedAt:      b.Now,
		UpdatedAt:      b.Now,
	}
}

func (b *CarBuilder) BuildRequestDTO() reqdto.CarRequest {
	return reqdto.CarRequest{
		Make:           b.Make,
		Model:          b.Model,
		Year:           b.Year,
		DailyRateCents: b.DailyRateCents,
	}
}

// Fluent builder methods
func (b *CarBuilder) WithID(id uuid.UUID) *CarBuilder {
	b.ID = id
	return b
}

func (b *CarBuilder) WithDailyRate(cents int64) *CarBuilder {
	b.DailyRateCents = cents
	return b
}

func (b *CarBuilder) WithMake(makeName string) *CarBuilder {
	b.Make = makeName
	return b
}

func (b *CarBuilder) WithYear(year int) *CarBuilder {
	b.Year = year
	return b
}

func (b *CarBuilder) AsRetired() *CarBuilder {
	b.Status = car.StatusRetired
	return b
}
