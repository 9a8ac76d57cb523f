package services

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers translate these to HTTP statuses; anything not
// matching one of them is treated as an internal failure and propagated.
var (
	ErrNotFound          = errors.New("record not found")
	ErrSlotUnavailable   = errors.New("slot is no longer available")
	ErrOwnershipMismatch = errors.New("resource does not belong to the requesting party")
	ErrDuplicatePayment  = errors.New("a payment already exists for this appointment")
	ErrMissingArtist     = errors.New("appointment has no assigned artist")
	ErrValidation        = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// InvalidTransitionError names the illegal (from, to) pair so callers can show
// exactly which state change was rejected. It matches ErrInvalidTransition
// under errors.Is.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %q to %q", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalidTransition(entity string, from, to string) error {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
