package request

import "roadready/internal/usecase/commands"

type CarRequest struct {
	Make           string `json:"make" binding:"required,max=100"`
	Model          string `json:"model" binding:"required,max=100"`
	Year           int    `json:"year" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,gt=0,lte=10000000"`
}

func (r CarRequest) ToCommand() commands.CarInput {
	return commands.CarInput{
		Make:           r.Make,
		Model:          r.Model,
		Year:           r.Year,
		DailyRateCents: r.DailyRateCents,
	}
}
