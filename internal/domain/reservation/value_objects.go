package reservation

import (
	"fmt"
	"time"

	"roadready/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	Day = 24 * time.Hour

	// MaxNights caps a single booking.
	MaxNights = 365

	secondsPerDay = int64(Day / time.Second)
)

// Period is the half-open interval [start, end).
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod validates a requested booking window against now.
func NewPeriod(start, end, now time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, ErrMissingDates
	}
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	if start.Before(now) {
		return Period{}, ErrStartInPast
	}
	p := Period{start: start.UTC(), end: end.UTC()}
	if p.Nights() > MaxNights {
		return Period{}, ErrPeriodTooLong
	}
	return p, nil
}

// ReconstructPeriod skips the past-date check for rows already stored.
func ReconstructPeriod(start, end time.Time) Period {
	return Period{start: start.UTC(), end: end.UTC()}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

// Overlaps is true when the two intervals share an instant. Touching
// boundaries do not overlap.
func (p Period) Overlaps(o Period) bool {
	return p.start.Before(o.end) && o.start.Before(p.end)
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && t.Before(p.end)
}

// Nights rounds the interval up to whole days, with a minimum of one. It
// counts in seconds because time.Duration saturates after about 292 years.
func (p Period) Nights() int64 {
	secs := p.end.Unix() - p.start.Unix()
	frac := p.end.Nanosecond() - p.start.Nanosecond()
	if frac < 0 {
		secs--
	}
	n := secs / secondsPerDay
	if secs%secondsPerDay != 0 || frac != 0 {
		n++
	}
	return max(n, 1)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}

// OverlapError names the confirmed reservation that blocks a booking.
type OverlapError struct {
	ConflictingID uuid.UUID
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("car already booked by reservation %s for an overlapping period", e.ConflictingID)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}

func (e *OverlapError) ErrorKind() errs.Kind { return errs.KindConflict }

func (e *OverlapError) PublicMessage() string {
	return "car is already booked for the requested period"
}
