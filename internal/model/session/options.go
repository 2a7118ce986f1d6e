package session

import (
	"strings"
)

// Options describes one consent/chat session. It is immutable once built and
// is shared by reference for the lifetime of the session.
type Options struct {
	slug              string
	apiKey            string
	aiType            AIType
	userID            string
	userEmail         *string
	title             *string
	description       *string
	primaryButtonText *string
	cancelButtonText  *string
	colors            *ColorScheme
	onClose           OnCloseFunc
}

// Option customises optional fields of Options. Only NewOptions can apply one,
// so a built Options never changes.
type Option interface {
	apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) apply(o *Options) { f(o) }

// NewOptions validates the required fields and applies opts.
func NewOptions(slug, apiKey string, aiType AIType, userID string, opts ...Option) (*Options, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, &ValidationError{Field: "slug", Reason: "is required"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ValidationError{Field: "apiKey", Reason: "is required"}
	}
	if aiType == "" {
		return nil, &ValidationError{Field: "aiType", Reason: "is required"}
	}
	if !aiType.Valid() {
		return nil, &ValidationError{Field: "aiType", Reason: "unknown value " + string(aiType)}
	}
	if strings.TrimSpace(userID) == "" {
		return nil, &ValidationError{Field: "userId", Reason: "is required"}
	}

	o := &Options{
		slug:   slug,
		apiKey: apiKey,
		aiType: aiType,
		userID: userID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}
	return o, nil
}

// WithUserEmail sets the user's email. An empty email is treated as absent.
func WithUserEmail(email string) Option {
	return optionFunc(func(o *Options) {
		if email == "" {
			o.userEmail = nil
			return
		}
		o.userEmail = &email
	})
}

// WithTitle overrides the dialog title.
func WithTitle(title string) Option {
	return optionFunc(func(o *Options) { o.title = &title })
}

// WithDescription overrides the dialog description.
func WithDescription(description string) Option {
	return optionFunc(func(o *Options) { o.description = &description })
}

// WithPrimaryButtonText overrides the accept button label.
func WithPrimaryButtonText(text string) Option {
	return optionFunc(func(o *Options) { o.primaryButtonText = &text })
}

// WithCancelButtonText overrides the decline button label.
func WithCancelButtonText(text string) Option {
	return optionFunc(func(o *Options) { o.cancelButtonText = &text })
}

// WithColors sets the dialog palette.
func WithColors(colors ColorScheme) Option {
	return optionFunc(func(o *Options) { o.colors = &colors })
}

// WithOnClose registers the terminal-outcome callback.
func WithOnClose(fn OnCloseFunc) Option {
	return optionFunc(func(o *Options) { o.onClose = fn })
}

func (o *Options) Slug() string   { return o.slug }
func (o *Options) APIKey() string { return o.apiKey }
func (o *Options) AIType() AIType { return o.aiType }
func (o *Options) UserID() string { return o.userID }

func (o *Options) UserEmail() (string, bool)         { return deref(o.userEmail) }
func (o *Options) Title() (string, bool)             { return deref(o.title) }
func (o *Options) Description() (string, bool)       { return deref(o.description) }
func (o *Options) PrimaryButtonText() (string, bool) { return deref(o.primaryButtonText) }
func (o *Options) CancelButtonText() (string, bool)  { return deref(o.cancelButtonText) }

// Colors returns the configured palette, if any.
func (o *Options) Colors() (ColorScheme, bool) {
	if o.colors == nil {
		return ColorScheme{}, false
	}
	return *o.colors, true
}

// NotifyClose invokes the onClose callback when one is registered.
func (o *Options) NotifyClose(reason CloseReason) {
	if o == nil || o.onClose == nil {
		return
	}
	o.onClose(reason)
}

func deref(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}
