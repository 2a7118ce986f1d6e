package view

import (
	"github.com/resubscribe/resubscribe-go/internal/model/dialog"
	"github.com/resubscribe/resubscribe-go/internal/model/session"
	"github.com/resubscribe/resubscribe-go/internal/service/chaturl"
	"github.com/resubscribe/resubscribe-go/internal/service/presentation"
)

// Kind tells a Presenter what to draw.
type Kind string

const (
	KindNone    Kind = "none"
	KindConsent Kind = "consent"
	KindChat    Kind = "chat"
)

// Palette holds resolved colors as "#rrggbb" strings.
type Palette struct {
	Primary           string `json:"primary"`
	PrimaryForeground string `json:"primaryForeground"`
	Text              string `json:"text"`
	Background        string `json:"background"`
}

// Consent is the model of the consent dialog.
type Consent struct {
	dialog.Resolved
	Colors Palette `json:"colors"`
}

// Chat is the model of the embedded chat surface.
type Chat struct {
	URL          string                   `json:"url"`
	CloseConfirm dialog.CloseConfirmation `json:"closeConfirm"`
}

// View is everything a Presenter needs to render the current state.
type View struct {
	Kind    Kind          `json:"kind"`
	State   session.State `json:"state"`
	CycleID string        `json:"cycleId,omitempty"`
	Consent *Consent      `json:"consent,omitempty"`
	Chat    *Chat         `json:"chat,omitempty"`
}

// Renderer turns machine snapshots into views.
type Renderer struct {
	copies  dialog.Store
	builder *chaturl.Builder
}

// NewRenderer wires the default-copy catalog and the chat URL builder.
func NewRenderer(copies dialog.Store, builder *chaturl.Builder) *Renderer {
	return &Renderer{copies: copies, builder: builder}
}

// Render returns an empty view while closed.
func (r *Renderer) Render(snap presentation.Snapshot) View {
	v := View{Kind: KindNone, State: snap.State, CycleID: snap.CycleID}
	if snap.Options == nil {
		return v
	}

	switch snap.State {
	case session.StateConfirming:
		v.Kind = KindConsent
		v.Consent = &Consent{
			Resolved: dialog.Resolve(r.copies, snap.Options),
			Colors:   palette(snap.Options),
		}
	case session.StateOpen:
		v.Kind = KindChat
		v.Chat = &Chat{
			URL:          r.builder.String(snap.Options),
			CloseConfirm: dialog.DefaultCloseConfirmation(),
		}
	}
	return v
}

func palette(opts *session.Options) Palette {
	scheme, ok := opts.Colors()
	if !ok {
		scheme = session.DefaultColorScheme()
	}
	foreground := "#000000"
	if session.IsDark(scheme.Primary) {
		foreground = "#ffffff"
	}
	return Palette{
		Primary:           scheme.Primary.Hex(),
		PrimaryForeground: foreground,
		Text:              scheme.Text.Hex(),
		Background:        scheme.Background.Hex(),
	}
}
