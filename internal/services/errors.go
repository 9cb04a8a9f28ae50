package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindNotFound           Kind = "NOT_FOUND"
	KindEmptyWaitlist      Kind = "EMPTY_WAITLIST"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindTimeout            Kind = "TIMEOUT"
	KindPartialFailure     Kind = "PARTIAL_FAILURE"
)

// Error is a categorized service error. Op names the failing operation and Err the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrTimeout) works on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrEmptyWaitlist      = &Error{Kind: KindEmptyWaitlist}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrPartialFailure     = &Error{Kind: KindPartialFailure}
)

// KindOf returns the kind of the outermost *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func invalidArgument(op, format string, args ...any) *Error {
	return newError(KindInvalidArgument, op, fmt.Errorf(format, args...))
}

// storageError classifies a repository error.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindTimeout, op, err)
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, op, err)
	case errors.Is(err, repositories.ErrWaitlistFull):
		return newError(KindInvalidArgument, op, err)
	}
	return newError(KindStorageUnavailable, op, err)
}
