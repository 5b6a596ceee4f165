//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"roadready/internal/infra"
	"roadready/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		kind       []infra.RepositoryErrorKind
		wantKind   infra.RepositoryErrorKind
		wantPublic errs.Kind
		constraint string
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantKind: infra.KindNotFound, wantPublic: errs.KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), wantKind: infra.KindNotFound, wantPublic: errs.KindNotFound},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "payments_reservation_id_key"},
			wantKind:   infra.KindDuplicateKey,
			wantPublic: errs.KindConflict,
			constraint: "payments_reservation_id_key",
		},
		{
			name:       "exclusion violation",
			err:        &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"},
			wantKind:   infra.KindExclusionViolated,
			wantPublic: errs.KindConflict,
			constraint: "reservations_no_overlap",
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514", ConstraintName: "payments_amount_cents_check"},
			wantKind:   infra.KindCheckViolated,
			wantPublic: errs.KindStoreFailure,
			constraint: "payments_amount_cents_check",
		},
		{name: "anything else", err: errors.New("broken pipe"), wantKind: infra.KindDBFailure, wantPublic: errs.KindStoreFailure},
		{name: "explicit kind wins", err: errors.New("zero rows"), kind: []infra.RepositoryErrorKind{infra.KindNotFound}, wantKind: infra.KindNotFound, wantPublic: errs.KindNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op", tc.err, tc.kind...)

			assert.True(t, infra.IsKind(err, tc.wantKind), "got %v", err)
			assert.Equal(t, tc.wantPublic, errs.KindOf(err))
			var repoErr infra.RepositoryError
			if assert.ErrorAs(t, err, &repoErr) {
				assert.Equal(t, tc.constraint, repoErr.Constraint)
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, infra.IsRetryable(infra.WrapRepoErr("tx", &pgconn.PgError{Code: "40001"})))
	assert.True(t, infra.IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, infra.IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, infra.IsRetryable(errors.New("timeout")))
}

func TestCheckViolationIsNotBlamedOnTheClient(t *testing.T) {
	err := infra.WrapRepoErr("insert payment", &pgconn.PgError{Code: "23514", ConstraintName: "payments_amount_cents_check"})

	assert.Equal(t, errs.KindStoreFailure, errs.KindOf(err))
	assert.Equal(t, "internal server error", errs.PublicMessage(err))
}
