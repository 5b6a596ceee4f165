package infra

import (
	"errors"
	"log/slog"

	"roadready/internal/pkg/errs"
	"roadready/internal/pkg/pgconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// ErrorKind lets the API boundary map store failures without importing infra.
func (e RepositoryError) ErrorKind() errs.Kind {
	switch e.Kind {
	case KindNotFound:
		return errs.KindNotFound
	case KindDuplicateKey, KindExclusionViolated:
		return errs.KindConflict
	case KindForeignKeyViolated:
		return errs.KindInvalidInput
	default:
		return errs.KindStoreFailure
	}
}

func (e RepositoryError) PublicMessage() string {
	switch e.Kind {
	case KindNotFound:
		return "resource not found"
	case KindDuplicateKey, KindExclusionViolated:
		return "resource conflicts with existing state"
	case KindForeignKeyViolated:
		return "referenced resource does not exist"
	default:
		return "internal server error"
	}
}

// WrapRepoErr classifies err by SQLSTATE unless kind is given explicitly.
// Only unexpected failures are logged. Inputs are validated before they reach
// the store, so a CHECK violation is one of them.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k, constraint := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindDBFailure || k == KindCheckViolated {
		slog.Error("Repository error: "+msg,
			slog.String("kind", string(k)),
			slog.Any("error", err),
		)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, Constraint: constraint, msg: msg, err: err}
}

func classify(err error) (RepositoryErrorKind, string) {
	if err == nil {
		return KindDBFailure, ""
	}
	if pgconv.IsNoRows(err) {
		return KindNotFound, ""
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure, ""
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return KindDuplicateKey, pgErr.ConstraintName
	case pgerrcode.ExclusionViolation:
		return KindExclusionViolated, pgErr.ConstraintName
	case pgerrcode.ForeignKeyViolation:
		return KindForeignKeyViolated, pgErr.ConstraintName
	case pgerrcode.CheckViolation:
		return KindCheckViolated, pgErr.ConstraintName
	default:
		return KindDBFailure, ""
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsRetryable reports serialization failures and deadlocks.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindExclusionViolated  RepositoryErrorKind = "EXCLUSION_VIOLATED"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
)
