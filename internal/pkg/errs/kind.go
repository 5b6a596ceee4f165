package errs

import (
	"errors"
)

// Kind classifies an error for callers that branch on the failure category
// instead of the message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindInvalidInput
	KindInvalidStateTransition
	KindImmutableRecord
	KindStoreFailure
)

var kindNames = map[Kind]string{
	KindUnknown:                "Unknown",
	KindNotFound:               "NotFound",
	KindConflict:               "Conflict",
	KindForbidden:              "Forbidden",
	KindInvalidInput:           "InvalidInput",
	KindInvalidStateTransition: "InvalidStateTransition",
	KindImmutableRecord:        "ImmutableRecord",
	KindStoreFailure:           "StoreFailure",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[KindUnknown]
}

// Kinded is implemented by errors that carry their own Kind.
type Kinded interface {
	error
	ErrorKind() Kind
}

type kindError struct {
	kind Kind
	msg  string
	err  error
}

func (e *kindError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() error         { return e.err }
func (e *kindError) ErrorKind() Kind       { return e.kind }
func (e *kindError) PublicMessage() string { return e.msg }

// Define returns a sentinel error of the given kind. Compare with errors.Is.
func Define(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// WithKind attaches kind and a client-facing msg to err. err stays reachable
// through errors.Is/As.
func WithKind(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, msg: msg, err: err}
}

// KindOf returns the outermost kind found in the chain, or KindUnknown.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// PublicMessage returns the message of the outermost kinded error in the chain.
func PublicMessage(err error) string {
	var k Kinded
	if !errors.As(err, &k) {
		return ""
	}
	if pm, ok := k.(interface{ PublicMessage() string }); ok {
		return pm.PublicMessage()
	}
	return k.Error()
}
