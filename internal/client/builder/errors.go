package builder

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNoSteps           = errors.New("add at least one step")
	ErrNoBlocks          = errors.New("add at least one block to a step")
	ErrInvalidTransition = errors.New("invalid stage transition")

	ErrStepNotFound = errors.New("step not found")
	ErrEmptyOptions = errors.New("dropdown needs at least one option")
	ErrEmptyItems   = errors.New("checklist needs at least one item")
	ErrInvalidDay   = errors.New("day must be a positive number")

	ErrEmptyTag     = errors.New("tag is empty")
	ErrDuplicateTag = errors.New("tag already added")

	ErrUnknownTheme    = errors.New("unknown theme")
	ErrIncompleteTheme = errors.New("custom theme needs primary, secondary and accent colors")
	ErrInvalidColor    = errors.New("color must be #RRGGBB")
	ErrUnknownPrice    = errors.New("price type must be free or paid")
)

// ValidationError names the draft field that blocked a transition or publish.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string, cause error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: cause}
}
