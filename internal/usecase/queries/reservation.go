package queries

import (
	"context"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/reservation"
	"roadready/internal/domain/user"
	"roadready/internal/infra"
	"roadready/internal/pkg/clock"
	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.Define(errs.KindNotFound, "reservation not found")

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListFirstPage(ctx context.Context, userID *uuid.UUID, limit int32) ([]*ReservationView, error)
	ListKeyset(ctx context.Context, userID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*ReservationView, error)
	// List returns the caller's reservations, or everyone's for an admin.
	List(ctx context.Context, p auth.Principal, cursor *Cursor, limit int) (Page[*ReservationView], error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
	clock     clock.Clock
}

func NewReservationQueries(readStore ReservationReadStore, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore, clock: clk}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, p auth.Principal) (*ReservationView, error) {
	v, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if err := auth.OwnerOrAdmin(v.UserID, p); err != nil {
		return nil, err
	}
	withComputedState(v, q.clock.Now())
	return v, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, p auth.Principal, cursor *Cursor, limit int) (Page[*ReservationView], error) {
	limit = ValidateLimit(limit)
	owner := ownerFilter(p)

	var rows []*ReservationView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.ListFirstPage(ctx, owner, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return Page[*ReservationView]{}, derr
		}
		rows, err = q.readStore.ListKeyset(ctx, owner, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return Page[*ReservationView]{}, err
	}

	now := q.clock.Now()
	for _, v := range rows {
		withComputedState(v, now)
	}
	return paginate(rows, limit, func(v *ReservationView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	}), nil
}

// withComputedState fills State from StoredState as of now.
func withComputedState(v *ReservationView, now time.Time) {
	stored, err := reservation.ParseStoredState(v.StoredState)
	if err != nil {
		v.State = v.StoredState
		return
	}
	res := reservation.ReconstructReservation(v.ID, v.CarID, v.UserID,
		reservation.ReconstructPeriod(v.StartDate, v.EndDate), stored,
		v.CancelledAt, v.CompletedAt, v.CreatedAt, v.UpdatedAt)
	v.State = res.StateAt(now).String()
	v.Nights = res.Period().Nights()
}

// ownerFilter returns nil for admins, who see every row.
func ownerFilter(p auth.Principal) *uuid.UUID {
	if p.HasRole(user.RoleAdmin) {
		return nil
	}
	id := p.UserID
	return &id
}
