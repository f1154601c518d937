package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUnauthorized   = errors.New("cannot authenticate")
	ErrStore          = errors.New("account store failure")
)

// EmptyFieldError reports a required input field that was left blank.
// Callers can re-prompt for the named field.
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("field %q must not be empty", e.Field)
}

// IsEmptyField reports whether err is an EmptyFieldError for the given field.
func IsEmptyField(err error, field string) bool {
	var e *EmptyFieldError
	return errors.As(err, &e) && e.Field == field
}
