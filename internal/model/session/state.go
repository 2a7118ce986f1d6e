package session

// State is the presentation state of a consent/chat session.
type State string

const (
	StateClosed     State = "closed"
	StateConfirming State = "confirming"
	StateOpen       State = "open"
)

func (s State) String() string {
	return string(s)
}

// Visible reports whether a Presenter should show anything for s.
func (s State) Visible() bool {
	return s == StateConfirming || s == StateOpen
}

// CloseReason tells the host how a session ended.
type CloseReason string

const (
	CloseReasonCancelConsent CloseReason = "cancel-consent"
	CloseReasonClose         CloseReason = "close"
)

func (r CloseReason) String() string {
	return string(r)
}

// OnCloseFunc receives the terminal outcome of a session, at most once per cycle.
type OnCloseFunc func(reason CloseReason)
