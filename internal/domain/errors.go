package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflicts with existing data")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")

	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrInvalidPartySize       = errors.New("party size must be at least 1")
	ErrInvalidReservationTime = errors.New("reservation time must be in the future")
	ErrInvalidStatus          = errors.New("unknown status")
	ErrInvalidRestaurant      = errors.New("invalid restaurant")
	ErrInvalidCapacity        = errors.New("table capacity must be positive")
	ErrInvalidPrice           = errors.New("price must be non-negative with at most 2 decimal places")
	ErrInvalidUser            = errors.New("invalid user")
	ErrInvalidPayment         = errors.New("invalid payment")
	ErrInvalidNotification    = errors.New("invalid notification")
)

// ReferenceNotFoundError reports a lookup by id that missed.
type ReferenceNotFoundError struct {
	Kind string
	ID   int64
}

func NotFound(kind string, id int64) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{Kind: kind, ID: id}
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidValueError is a domain precondition failure on a caller-supplied value.
type InvalidValueError struct {
	Err   error
	Value any
}

func Invalid(err error, value any) *InvalidValueError {
	return &InvalidValueError{Err: err, Value: value}
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%v (got %v)", e.Err, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func IsInvalid(err error) bool {
	var target *InvalidValueError
	return errors.As(err, &target)
}
