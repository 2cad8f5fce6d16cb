package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrIntegrityViolation = errors.New("integrity violation")
)

// TransitionError reports a state change that is not legal from the record's
// current state.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
