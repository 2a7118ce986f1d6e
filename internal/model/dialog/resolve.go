package dialog

import "github.com/resubscribe/resubscribe-go/internal/model/session"

// Resolved is the consent dialog text after applying overrides over defaults.
type Resolved struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PrimaryButtonText string `json:"primaryButtonText"`
	CancelButtonText  string `json:"cancelButtonText"`
}

// Resolve picks each field from opts when present, otherwise from the store
// entry for opts' ai type. A missing store entry yields empty title/description.
func Resolve(store Store, opts *session.Options) Resolved {
	var defaults Copy
	if store != nil {
		defaults, _ = store.FindByAIType(opts.AIType())
	}

	return Resolved{
		Title:             pick(opts.Title, defaults.Title),
		Description:       pick(opts.Description, defaults.Description),
		PrimaryButtonText: pick(opts.PrimaryButtonText, DefaultPrimaryButtonText),
		CancelButtonText:  pick(opts.CancelButtonText, DefaultCancelButtonText),
	}
}

func pick(get func() (string, bool), fallback string) string {
	if v, ok := get(); ok {
		return v
	}
	return fallback
}
