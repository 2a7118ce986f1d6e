package presentation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/resubscribe/resubscribe-go/internal/model/session"
)

// ConsentReporter receives the consent event of every new session. Report is
// called with the machine locked and must not block.
type ConsentReporter interface {
	Report(opts *session.Options)
}

// Snapshot is a consistent view of the machine at one instant.
type Snapshot struct {
	State   session.State
	CycleID string
	// Options is nil while closed.
	Options *session.Options
}

// Machine drives one consent/chat session at a time:
// closed -> confirming -> open -> closed, or confirming -> closed on cancel.
type Machine struct {
	reporter ConsentReporter
	logger   zerolog.Logger

	mu       sync.RWMutex
	state    session.State
	options  *session.Options
	cycleID  string
	watchers map[uint64]chan Snapshot
	nextID   uint64
}

// NewMachine returns a closed machine. reporter may be nil.
func NewMachine(reporter ConsentReporter, logger zerolog.Logger) *Machine {
	return &Machine{
		reporter: reporter,
		logger:   logger.With().Str("component", "presentation").Logger(),
		state:    session.StateClosed,
		watchers: make(map[uint64]chan Snapshot),
	}
}

// OpenWithConsent starts a session and shows the consent dialog. The consent
// event is reported without waiting for it. Starting a session while another is
// confirming or open fails with ErrSessionActive and leaves it untouched.
func (m *Machine) OpenWithConsent(opts *session.Options) error {
	if opts == nil {
		return ErrNilOptions
	}

	m.mu.Lock()
	if m.state != session.StateClosed {
		state := m.state
		m.mu.Unlock()
		m.logger.Debug().Str("state", state.String()).Msg("rejected open while session active")
		return ErrSessionActive
	}

	if m.reporter != nil {
		m.reporter.Report(opts)
	}

	m.options = opts
	m.cycleID = uuid.NewString()
	m.state = session.StateConfirming
	snap := m.snapshotLocked()
	m.broadcastLocked(snap)
	m.mu.Unlock()

	m.logger.Debug().Str("cycle", snap.CycleID).Str("slug", opts.Slug()).Msg("consent requested")
	return nil
}

// Accept moves from the consent dialog to the chat view.
func (m *Machine) Accept() error {
	m.mu.Lock()
	if m.state != session.StateConfirming {
		err := &TransitionError{From: m.state, Action: "accept"}
		m.mu.Unlock()
		return err
	}
	m.state = session.StateOpen
	snap := m.snapshotLocked()
	m.broadcastLocked(snap)
	m.mu.Unlock()

	m.logger.Debug().Str("cycle", snap.CycleID).Msg("consent accepted")
	return nil
}

// Cancel declines the consent dialog and ends the session with "cancel-consent".
func (m *Machine) Cancel() error {
	return m.finish(session.StateConfirming, "cancel", session.CloseReasonCancelConsent)
}

// Close leaves the chat view and ends the session with "close".
func (m *Machine) Close() error {
	return m.finish(session.StateOpen, "close", session.CloseReasonClose)
}

func (m *Machine) finish(from session.State, action string, reason session.CloseReason) error {
	m.mu.Lock()
	if m.state != from {
		err := &TransitionError{From: m.state, Action: action}
		m.mu.Unlock()
		return err
	}
	opts := m.options
	cycleID := m.cycleID
	m.state = session.StateClosed
	m.options = nil
	m.cycleID = ""
	m.broadcastLocked(m.snapshotLocked())
	m.mu.Unlock()

	m.logger.Debug().Str("cycle", cycleID).Str("reason", reason.String()).Msg("session closed")
	// Outside the lock so the callback may start a new session.
	opts.NotifyClose(reason)
	return nil
}

// State returns the current presentation state.
func (m *Machine) State() session.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns the current state together with its options.
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Watch streams snapshots until ctx is done, starting with the current one.
// Slow readers only ever see the latest snapshot.
func (m *Machine) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = ch
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, id)
		close(ch)
		m.mu.Unlock()
	}()

	return ch
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, CycleID: m.cycleID, Options: m.options}
}

// broadcastLocked must be called with mu held for writing.
func (m *Machine) broadcastLocked(snap Snapshot) {
	for _, ch := range m.watchers {
		select {
		case ch <- snap:
		default:
			// Drop the stale value and replace it.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
