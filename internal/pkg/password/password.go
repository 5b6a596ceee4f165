// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"roadready/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates input past this length.
const MaxBytes = 72

var (
	ErrEmpty    = errs.Define(errs.KindInvalidInput, "password is required")
	ErrTooLong  = errs.Define(errs.KindInvalidInput, "password exceeds 72 bytes")
	ErrMismatch = errs.New("password does not match")
)

var cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > MaxBytes:
		return "", ErrTooLong
	}

	out, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt")
	}
	return string(out), nil
}

// Verify returns ErrMismatch for a wrong password and a wrapped error for a
// malformed hash.
func Verify(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errs.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return errs.Wrap(err, "bcrypt")
	}
	return nil
}
