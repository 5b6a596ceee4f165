//go:build unit

package errs_test

import (
	"testing"

	"roadready/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

var errOverlap = errs.Define(errs.KindConflict, "car is already booked for that period")

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"sentinel", errOverlap, errs.KindConflict},
		{"wrapped sentinel", errs.Wrap(errOverlap, "request booking"), errs.KindConflict},
		{"outermost kind wins", errs.WithKind(errs.Wrap(errOverlap, "x"), errs.KindStoreFailure, "store"), errs.KindStoreFailure},
		{"plain error", errs.New("boom"), errs.KindUnknown},
		{"nil", nil, errs.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	wrapped := errs.Wrapf(errOverlap, "car %d", 7)

	assert.Equal(t, "car is already booked for that period", errs.PublicMessage(wrapped))
	assert.Contains(t, wrapped.Error(), "car 7")
	assert.Empty(t, errs.PublicMessage(errs.New("internal detail")))
}

func TestMark(t *testing.T) {
	cause := errs.New("serialization failure")
	marked := errs.Mark(cause, errOverlap)

	assert.True(t, errs.Is(marked, errOverlap))
	assert.True(t, errs.Is(marked, cause))
	assert.Equal(t, errOverlap, errs.Mark(nil, errOverlap))
	assert.Nil(t, errs.Wrap(nil, "noop"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidStateTransition", errs.KindInvalidStateTransition.String())
	assert.Equal(t, "Unknown", errs.Kind(99).String())
}
