package user

import (
	"net/mail"
	"strings"

	"roadready/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Define(errs.KindInvalidInput, "invalid email format")
	ErrInvalidRole     = errs.Define(errs.KindInvalidInput, "invalid role")
	ErrPasswordTooWeak = errs.Define(errs.KindInvalidInput, "password must be at least 8 characters long")
)

// Role decides which rentals and records a user may touch.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	if r := Role(s); r.IsValid() {
		return r, nil
	}
	return "", ErrInvalidRole
}

func (r Role) IsValid() bool  { return r == RoleCustomer || r == RoleAdmin }
func (r Role) String() string { return string(r) }

const (
	maxEmailLen    = 254
	minPasswordLen = 8
)

// Email is stored lower-cased; uniqueness among active users is
// case-insensitive.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLen {
		return Email{}, ErrInvalidEmail
	}
	// reject display-name forms such as "Ann <ann@example.com>"
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string { return e.value }

// Password is the plain text as submitted; it never leaves the process.
type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < minPasswordLen {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string { return p.value }
