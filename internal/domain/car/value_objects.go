package car

import (
	"math"
	"strings"

	"roadready/internal/pkg/errs"
)

const (
	MaxNameLength = 100
	MinYear       = 1950
	MaxYear       = 2100

	// MaxDailyRateCents is 100,000.00 a day.
	MaxDailyRateCents = 10_000_000
)

var (
	ErrInvalidDailyRate = errs.Define(errs.KindInvalidInput, "daily rate must be greater than zero")
	ErrDailyRateTooHigh = errs.Define(errs.KindInvalidInput, "daily rate exceeds 10000000 cents")
	ErrPriceOverflow    = errs.Define(errs.KindInvalidInput, "price exceeds the supported amount")
	ErrInvalidName      = errs.Define(errs.KindInvalidInput, "make and model must be 1-100 characters")
	ErrInvalidYear      = errs.Define(errs.KindInvalidInput, "model year out of range")
	ErrCarRetired       = errs.Define(errs.KindInvalidStateTransition, "car is retired")
)

// Rate is a daily price in cents.
type Rate struct {
	cents int64
}

func NewRate(cents int64) (Rate, error) {
	switch {
	case cents <= 0:
		return Rate{}, ErrInvalidDailyRate
	case cents > MaxDailyRateCents:
		return Rate{}, ErrDailyRateTooHigh
	}
	return Rate{cents: cents}, nil
}

func (r Rate) Cents() int64 { return r.cents }

// Times returns the price of n nights, refusing any product that would not
// fit in an int64.
func (r Rate) Times(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrPriceOverflow
	}
	if n != 0 && r.cents > math.MaxInt64/n {
		return 0, ErrPriceOverflow
	}
	return r.cents * n, nil
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	t := strings.TrimSpace(s)
	if t == "" || len(t) > MaxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: t}, nil
}

func (n Name) String() string { return n.value }

func validateYear(y int) error {
	if y < MinYear || y > MaxYear {
		return ErrInvalidYear
	}
	return nil
}
