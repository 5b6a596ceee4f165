package auth

import (
	"roadready/internal/domain/user"
	"roadready/internal/pkg/errs"
	"roadready/internal/pkg/password"
)

var ErrInvalidCredentials = errs.Define(errs.KindInvalidInput, "invalid email or password")

// Credentials is a validated email/password pair as typed by the renter.
type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(email, plain string) (Credentials, error) {
	e, err := user.NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := user.NewPassword(plain)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() user.Email { return c.email }

// Hash produces the bcrypt hash stored for a new account.
func (c Credentials) Hash() (string, error) {
	return password.Hash(c.password.Value())
}

// Check compares against a stored hash. A corrupt hash is reported the same
// way as a wrong password.
func (c Credentials) Check(hash string) error {
	if err := password.Verify(hash, c.password.Value()); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
