package domain

import (
	"errors"
	"fmt"
)

var (
	ErrExhaustedRetries     = errors.New("could not generate a unique order number")
	ErrDuplicateOrderNumber = errors.New("order number already in use")
	ErrNotFound             = errors.New("not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id int) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

type TransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// StoreError wraps a persistence failure with the operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStore returns nil for a nil err, passes domain errors through untouched
// and wraps everything else in a StoreError.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		notFound   *NotFoundError
		validation *ValidationError
		transition *TransitionError
		store      *StoreError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &validation), errors.As(err, &transition), errors.As(err, &store):
		return err
	case errors.Is(err, ErrExhaustedRetries), errors.Is(err, ErrDuplicateOrderNumber):
		return err
	}
	return &StoreError{Op: op, Err: err}
}
