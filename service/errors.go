package service

import (
	"errors"
	"fmt"
)

// ErrDuplicateBet is returned by BetRepository.Create when a bet with
// the same external bet id already exists. The placement flow maps it
// to a conflict.
var ErrDuplicateBet = errors.New("bet with this external bet id already exists")

// ErrorKind is the closed set of business failure classes. The HTTP
// boundary maps kinds to status codes; the core never deals in
// transport statuses.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindUpstream     ErrorKind = "upstream"
	KindPersistence  ErrorKind = "persistence"
)

// Error is a tagged business error. Err carries upstream or storage
// detail for logging; Message is safe to show to callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error without an underlying cause
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a tagged error wrapping an underlying cause
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Untagged errors are
// reported as persistence failures: anything unclassified escaping the
// core is a storage or programming fault, never caller input.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindPersistence
}
