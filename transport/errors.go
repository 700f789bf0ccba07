package transport

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRadio is the category every driver failure is reported under.
	// Test for it with errors.Is; errors.Unwrap yields the driver's cause.
	ErrRadio = errors.New("radio error")

	ErrNoFrame       = errors.New("receive window closed without a frame")
	ErrInvalidConfig = errors.New("invalid endpoint configuration")
)

// Error carries a driver failure into the Radio category.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %v", ErrRadio, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrRadio, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrRadio }

// wrap converts a driver error into an *Error. Errors that already are one
// pass through unchanged, as does ctx.Err() once the caller's ctx is done.
// A deadline the driver hit on its own is still a radio failure.
func wrap(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	return &Error{Op: op, Err: err}
}
