package models

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// ValidationError reports an entity that failed its invariants. Err is
// usually an ozzo validation.Errors map keyed by field.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(entity string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Entity: entity, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
