package readstore

import (
	"roadready/internal/infra/query"
	"roadready/internal/pkg/pgconv"
	"roadready/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func toUserView(row query.Users) *queries.UserView {
	return &queries.UserView{
		ID:        row.ID,
		Email:     row.Email,
		Role:      row.Role,
		IsActive:  row.IsActive,
		LastLogin: pgconv.TimePtrFromPgtype(row.LastLogin),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func toCarView(row query.Cars) *queries.CarView {
	return &queries.CarView{
		ID:             row.ID,
		Make:           row.Make,
		Model:          row.Model,
		Year:           int(row.Year),
		DailyRateCents: row.DailyRateCents,
		Status:         row.Status,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toReservationView(row query.Reservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:          row.ID,
		CarID:       row.CarID,
		UserID:      row.UserID,
		StartDate:   pgconv.TimeFromPgtype(row.StartDate),
		EndDate:     pgconv.TimeFromPgtype(row.EndDate),
		StoredState: row.State,
		State:       row.State,
		CancelledAt: pgconv.TimePtrFromPgtype(row.CancelledAt),
		CompletedAt: pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toPaymentView(row query.Payments) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		UserID:        row.UserID,
		AmountCents:   row.AmountCents,
		Nights:        row.Nights,
		SettledAt:     pgconv.TimeFromPgtype(row.SettledAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func toReviewView(row query.Reviews) *queries.ReviewView {
	return &queries.ReviewView{
		ID:            row.ID,
		UserID:        row.UserID,
		CarID:         row.CarID,
		ReservationID: row.ReservationID,
		Rating:        int(row.Rating),
		Comment:       row.Comment,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func mapRows[R any, V any](rows []R, fn func(R) V) []V {
	result := make([]V, len(rows))
	for i, row := range rows {
		result[i] = fn(row)
	}
	return result
}

func toPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
