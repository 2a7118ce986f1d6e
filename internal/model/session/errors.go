package session

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidOptions is matched by every construction failure of Options.
var ErrInvalidOptions = errors.New("invalid session options")

// ValidationError names the option that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidOptions, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOptions
}
