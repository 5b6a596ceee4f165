package response

import (
	"time"

	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CarResponse struct {
	ID             uuid.UUID `json:"id"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromCarView(v *queries.CarView) (*CarResponse, error) {
	var res CarResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromCarViews(vs []*queries.CarView) ([]*CarResponse, error) {
	res := make([]*CarResponse, 0, len(vs))
	if err := copier.Copy(&res, vs); err != nil {
		return nil, err
	}
	return res, nil
}
