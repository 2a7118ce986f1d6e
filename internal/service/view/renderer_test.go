package view

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resubscribe/resubscribe-go/internal/model/dialog"
	"github.com/resubscribe/resubscribe-go/internal/model/session"
	"github.com/resubscribe/resubscribe-go/internal/service/chaturl"
	"github.com/resubscribe/resubscribe-go/internal/service/presentation"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	builder, err := chaturl.NewBuilder("https://app.resubscribe.ai", zerolog.Nop())
	require.NoError(t, err)
	return NewRenderer(dialog.NewMemoryStore(dialog.Seed()), builder)
}

func TestRenderClosedIsEmpty(t *testing.T) {
	r := newRenderer(t)

	v := r.Render(presentation.Snapshot{State: session.StateClosed})

	assert.Equal(t, KindNone, v.Kind)
	assert.Nil(t, v.Consent)
	assert.Nil(t, v.Chat)
}

func TestRenderConsentUsesDefaults(t *testing.T) {
	r := newRenderer(t)
	opts, err := session.NewOptions("acme", "abc123", session.AITypeChurn, "u1")
	require.NoError(t, err)

	v := r.Render(presentation.Snapshot{State: session.StateConfirming, CycleID: "c1", Options: opts})

	require.Equal(t, KindConsent, v.Kind)
	require.NotNil(t, v.Consent)
	assert.Equal(t, "c1", v.CycleID)
	assert.Equal(t, "Before you go, let's chat", v.Consent.Title)
	assert.Equal(t, "Let's chat!", v.Consent.PrimaryButtonText)
	assert.Equal(t, "#007aff", v.Consent.Colors.Primary)
	assert.Equal(t, "#ffffff", v.Consent.Colors.PrimaryForeground)
	assert.Equal(t, "#ffffff", v.Consent.Colors.Background)
}

func TestRenderConsentLightPrimaryGetsDarkForeground(t *testing.T) {
	r := newRenderer(t)
	colors, err := session.NewColorScheme("#ffeb3b", "#333333", "#fafafa")
	require.NoError(t, err)
	opts, err := session.NewOptions("acme", "abc123", session.AITypeIntent, "u1", session.WithColors(colors))
	require.NoError(t, err)

	v := r.Render(presentation.Snapshot{State: session.StateConfirming, Options: opts})

	require.NotNil(t, v.Consent)
	assert.Equal(t, "#ffeb3b", v.Consent.Colors.Primary)
	assert.Equal(t, "#000000", v.Consent.Colors.PrimaryForeground)
	assert.Equal(t, "#333333", v.Consent.Colors.Text)
}

func TestRenderChat(t *testing.T) {
	r := newRenderer(t)
	opts, err := session.NewOptions("acme", "abc123", session.AITypeChurn, "u1", session.WithUserEmail("a@b.com"))
	require.NoError(t, err)

	v := r.Render(presentation.Snapshot{State: session.StateOpen, Options: opts})

	require.Equal(t, KindChat, v.Kind)
	require.NotNil(t, v.Chat)
	assert.Equal(t,
		"https://app.resubscribe.ai/chat/acme?ait=churn&uid=u1&iframe=true&hideclose=true&email=a%40b.com#apiKey=abc123",
		v.Chat.URL)
	assert.Equal(t, "Close Chat?", v.Chat.CloseConfirm.Title)
	assert.Nil(t, v.Consent)
}
