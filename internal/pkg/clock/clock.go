// Package clock supplies the current time to use cases so tests can pin it.
package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC at the microsecond precision PostgreSQL
// keeps, so values survive a round trip unchanged.
type System struct{}

func NewSystem() Clock { return System{} }

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Frozen returns whatever it was last set to.
type Frozen struct {
	at atomic.Pointer[time.Time]
}

func NewFrozen(t time.Time) *Frozen {
	f := &Frozen{}
	f.Set(t)
	return f
}

func (f *Frozen) Now() time.Time { return *f.at.Load() }

func (f *Frozen) Set(t time.Time) { f.at.Store(&t) }
