package presentation

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/resubscribe/resubscribe-go/internal/model/session"
)

var (
	ErrNilOptions        = errors.New("session options are required")
	ErrSessionActive     = errors.New("a session is already active")
	ErrInvalidTransition = errors.New("invalid presentation transition")
)

// TransitionError reports an action that is not allowed from the current state.
type TransitionError struct {
	From   session.State
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
