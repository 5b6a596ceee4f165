// Package errs is the error vocabulary shared by every layer: stack-carrying
// wrappers from cockroachdb/errors plus a Kind that the HTTP layer maps to a
// status code.
package errs

import cr "github.com/cockroachdb/errors"

func New(msg string) error { return cr.New(msg) }

// Wrap and Wrapf pass nil through so call sites can wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark makes err match target under Is without changing its message.
// A nil err yields target itself.
func Mark(err, target error) error {
	if err == nil {
		return target
	}
	return cr.Mark(err, target)
}

func Is(err, target error) bool { return cr.Is(err, target) }
