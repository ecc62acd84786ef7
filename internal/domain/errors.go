package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every registry and service. Callers match with
// errors.Is; the HTTP layer maps each sentinel to a status code.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func InvalidTransitionf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidTransition)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
