package presentation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resubscribe/resubscribe-go/internal/model/session"
	"github.com/resubscribe/resubscribe-go/internal/service/consent"
)

type recordingReporter struct {
	mu    sync.Mutex
	slugs []string
}

func (r *recordingReporter) Report(opts *session.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slugs = append(r.slugs, opts.Slug())
}

func (r *recordingReporter) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.slugs...)
}

type closeRecorder struct {
	reasons []session.CloseReason
}

func (c *closeRecorder) onClose(reason session.CloseReason) {
	c.reasons = append(c.reasons, reason)
}

func newOptions(t *testing.T, rec *closeRecorder) *session.Options {
	t.Helper()
	var opts []session.Option
	if rec != nil {
		opts = append(opts, session.WithOnClose(rec.onClose))
	}
	o, err := session.NewOptions("acme", "abc123", session.AITypeChurn, "u1", opts...)
	require.NoError(t, err)
	return o
}

func TestInitialStateIsClosed(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())

	snap := m.Snapshot()
	assert.Equal(t, session.StateClosed, snap.State)
	assert.Nil(t, snap.Options)
	assert.Empty(t, snap.CycleID)
}

func TestOpenWithConsentReportsAndConfirms(t *testing.T) {
	reporter := &recordingReporter{}
	m := NewMachine(reporter, zerolog.Nop())
	opts := newOptions(t, nil)

	require.NoError(t, m.OpenWithConsent(opts))

	snap := m.Snapshot()
	assert.Equal(t, session.StateConfirming, snap.State)
	assert.Same(t, opts, snap.Options)
	assert.NotEmpty(t, snap.CycleID)
	assert.Equal(t, []string{"acme"}, reporter.reported())
}

func TestCancelFromConfirming(t *testing.T) {
	rec := &closeRecorder{}
	m := NewMachine(&recordingReporter{}, zerolog.Nop())

	require.NoError(t, m.OpenWithConsent(newOptions(t, rec)))
	require.NoError(t, m.Cancel())

	snap := m.Snapshot()
	assert.Equal(t, session.StateClosed, snap.State)
	assert.Nil(t, snap.Options)
	assert.Equal(t, []session.CloseReason{session.CloseReasonCancelConsent}, rec.reasons)
}

func TestAcceptThenClose(t *testing.T) {
	rec := &closeRecorder{}
	m := NewMachine(&recordingReporter{}, zerolog.Nop())

	require.NoError(t, m.OpenWithConsent(newOptions(t, rec)))
	require.NoError(t, m.Accept())
	assert.Equal(t, session.StateOpen, m.State())
	assert.Empty(t, rec.reasons)

	require.NoError(t, m.Close())

	snap := m.Snapshot()
	assert.Equal(t, session.StateClosed, snap.State)
	assert.Nil(t, snap.Options)
	assert.Equal(t, []session.CloseReason{session.CloseReasonClose}, rec.reasons)
}

func TestIllegalTransitions(t *testing.T) {
	rec := &closeRecorder{}
	m := NewMachine(nil, zerolog.Nop())

	for _, fn := range []func() error{m.Accept, m.Cancel, m.Close} {
		err := fn()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
	}

	require.NoError(t, m.OpenWithConsent(newOptions(t, rec)))
	var terr *TransitionError
	require.True(t, errors.As(m.Close(), &terr))
	assert.Equal(t, session.StateConfirming, terr.From)
	assert.Equal(t, "close", terr.Action)

	require.NoError(t, m.Accept())
	assert.True(t, errors.Is(m.Accept(), ErrInvalidTransition))
	assert.True(t, errors.Is(m.Cancel(), ErrInvalidTransition))
	assert.Empty(t, rec.reasons)

	require.NoError(t, m.Close())
	assert.True(t, errors.Is(m.Close(), ErrInvalidTransition))
	assert.Equal(t, []session.CloseReason{session.CloseReasonClose}, rec.reasons)
}

func TestOpenWhileActiveIsRejected(t *testing.T) {
	reporter := &recordingReporter{}
	m := NewMachine(reporter, zerolog.Nop())
	first := newOptions(t, nil)

	require.NoError(t, m.OpenWithConsent(first))
	cycle := m.Snapshot().CycleID

	second, err := session.NewOptions("other", "k", session.AITypeIntent, "u2")
	require.NoError(t, err)
	assert.True(t, errors.Is(m.OpenWithConsent(second), ErrSessionActive))

	require.NoError(t, m.Accept())
	assert.True(t, errors.Is(m.OpenWithConsent(second), ErrSessionActive))

	snap := m.Snapshot()
	assert.Same(t, first, snap.Options)
	assert.Equal(t, cycle, snap.CycleID)
	assert.Equal(t, []string{"acme"}, reporter.reported())
}

func TestOpenWithNilOptions(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())
	assert.Equal(t, ErrNilOptions, m.OpenWithConsent(nil))
	assert.Equal(t, session.StateClosed, m.State())
}

func TestReopenAfterCloseGetsFreshCycle(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())

	require.NoError(t, m.OpenWithConsent(newOptions(t, nil)))
	firstCycle := m.Snapshot().CycleID
	require.NoError(t, m.Cancel())

	second, err := session.NewOptions("beta", "k", session.AITypeIntent, "u2")
	require.NoError(t, err)
	require.NoError(t, m.OpenWithConsent(second))

	snap := m.Snapshot()
	assert.Same(t, second, snap.Options)
	assert.NotEqual(t, firstCycle, snap.CycleID)
}

func TestOnCloseMayReopen(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())
	next := newOptions(t, nil)

	var reopenErr error
	first, err := session.NewOptions("acme", "abc123", session.AITypeChurn, "u1",
		session.WithOnClose(func(session.CloseReason) { reopenErr = m.OpenWithConsent(next) }))
	require.NoError(t, err)

	require.NoError(t, m.OpenWithConsent(first))
	require.NoError(t, m.Cancel())

	require.NoError(t, reopenErr)
	assert.Same(t, next, m.Snapshot().Options)
}

func TestFailingReportDoesNotBlockConfirming(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	reporter, err := consent.NewReporter(consent.Config{
		APIBaseURL: base,
		Locale:     func() string { return "en" },
		Timeout:    time.Second,
	})
	require.NoError(t, err)
	m := NewMachine(reporter, zerolog.Nop())

	require.NoError(t, m.OpenWithConsent(newOptions(t, nil)))
	assert.Equal(t, session.StateConfirming, m.State())
	reporter.Wait()
	assert.Equal(t, session.StateConfirming, m.State())
	require.NoError(t, m.Accept())
}

func TestWatchDeliversTransitions(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := m.Watch(ctx)
	assert.Equal(t, session.StateClosed, (<-ch).State)

	require.NoError(t, m.OpenWithConsent(newOptions(t, nil)))
	assert.Equal(t, session.StateConfirming, (<-ch).State)

	require.NoError(t, m.Accept())
	assert.Equal(t, session.StateOpen, (<-ch).State)

	require.NoError(t, m.Close())
	snap := <-ch
	assert.Equal(t, session.StateClosed, snap.State)
	assert.Nil(t, snap.Options)
}

func TestWatchKeepsOnlyLatest(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := m.Watch(ctx)
	require.NoError(t, m.OpenWithConsent(newOptions(t, nil)))
	require.NoError(t, m.Accept())

	assert.Equal(t, session.StateOpen, (<-ch).State)
}

func TestWatchClosesOnCancel(t *testing.T) {
	m := NewMachine(nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	ch := m.Watch(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch channel was not closed")
	}
}
