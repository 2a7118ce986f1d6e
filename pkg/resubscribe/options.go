package resubscribe

import "github.com/resubscribe/resubscribe-go/internal/model/session"

type (
	// Options describes one consent/chat session. Build it with NewOptions.
	Options = session.Options
	// Option sets an optional field of Options.
	Option          = session.Option
	AIType          = session.AIType
	ColorScheme     = session.ColorScheme
	State           = session.State
	CloseReason     = session.CloseReason
	OnCloseFunc     = session.OnCloseFunc
	ValidationError = session.ValidationError
)

const (
	AITypeIntent          = session.AITypeIntent
	AITypeChurn           = session.AITypeChurn
	AITypeDelete          = session.AITypeDelete
	AITypeSubscriber      = session.AITypeSubscriber
	AITypePresubscription = session.AITypePresubscription
	AITypePrecancel       = session.AITypePrecancel

	StateClosed     = session.StateClosed
	StateConfirming = session.StateConfirming
	StateOpen       = session.StateOpen

	CloseReasonCancelConsent = session.CloseReasonCancelConsent
	CloseReasonClose         = session.CloseReasonClose
)

var (
	ErrInvalidOptions = session.ErrInvalidOptions
	ErrUnknownAIType  = session.ErrUnknownAIType
)

// NewOptions validates the required fields and applies opts.
func NewOptions(slug, apiKey string, aiType AIType, userID string, opts ...Option) (*Options, error) {
	return session.NewOptions(slug, apiKey, aiType, userID, opts...)
}

// ParseAIType converts a tag such as "churn" into an AIType.
func ParseAIType(raw string) (AIType, error) {
	return session.ParseAIType(raw)
}

// NewColorScheme parses three hex colors.
func NewColorScheme(primary, text, background string) (ColorScheme, error) {
	return session.NewColorScheme(primary, text, background)
}

func WithUserEmail(email string) Option         { return session.WithUserEmail(email) }
func WithTitle(title string) Option             { return session.WithTitle(title) }
func WithDescription(description string) Option { return session.WithDescription(description) }
func WithPrimaryButtonText(text string) Option  { return session.WithPrimaryButtonText(text) }
func WithCancelButtonText(text string) Option   { return session.WithCancelButtonText(text) }
func WithColors(colors ColorScheme) Option      { return session.WithColors(colors) }
func WithOnClose(fn OnCloseFunc) Option         { return session.WithOnClose(fn) }
