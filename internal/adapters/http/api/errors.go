package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrRateLimited   = errors.New("too many requests")
	ErrNotFound      = errors.New("not found")
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }
func (e *opError) Unwrap() error { return e.err }

// Wrap annotates err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// NewKind builds an op error for a sentinel kind.
func NewKind(op string, kind error) error {
	return &opError{op: op, err: kind}
}

// WrapKind annotates err with op and a sentinel kind, keeping both matchable.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, err: fmt.Errorf("%w: %w", kind, err)}
}
