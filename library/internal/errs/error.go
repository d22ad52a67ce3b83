package errs

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrEmailTaken = errors.New("user with this email already exists")
	ErrISBNTaken  = errors.New("book with this isbn already exists")
)

// Validation marks err as a validation failure and keeps its message.
func Validation(err error) error {
	return &validationError{err: err}
}

type validationError struct {
	err error
}

func (e *validationError) Error() string {
	return e.err.Error()
}

func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *validationError) Unwrap() error {
	return e.err
}
