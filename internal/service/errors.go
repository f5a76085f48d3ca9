package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing row and a row the actor may not see.
	// Callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrValidation is wrapped with a specific reason, e.g.
	// "validation: title is required".
	ErrValidation = errors.New("validation")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
