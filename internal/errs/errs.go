// Package errs holds the error taxonomy shared by storage, services and handlers.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the record does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrValidation means an input was outside its declared bounds.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the write would break a referential rule.
	ErrConflict = errors.New("conflict")
)

func NotFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
