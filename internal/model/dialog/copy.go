package dialog

import "github.com/resubscribe/resubscribe-go/internal/model/session"

const (
	DefaultPrimaryButtonText = "Let's chat!"
	DefaultCancelButtonText  = "Not right now"
)

// CloseConfirmation is the copy of the prompt shown before leaving the chat.
type CloseConfirmation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Confirm string `json:"confirm"`
	Dismiss string `json:"dismiss"`
}

// DefaultCloseConfirmation returns the stock close prompt.
func DefaultCloseConfirmation() CloseConfirmation {
	return CloseConfirmation{
		Title:   "Close Chat?",
		Message: "Are you sure you want to close the chat?",
		Confirm: "Yes",
		Dismiss: "Cancel",
	}
}

// Copy is the default consent dialog text for one ai type.
type Copy struct {
	AIType      session.AIType `json:"aiType"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

// Seed provides the default copy for every supported ai type.
func Seed() []Copy {
	return []Copy{
		{
			AIType:      session.AITypeIntent,
			Title:       "How can we help you today?",
			Description: "Our AI assistant is here to help with any questions or concerns you may have.",
		},
		{
			AIType:      session.AITypeChurn,
			Title:       "Before you go, let's chat",
			Description: "We'd love to understand your concerns and see if there's anything we can do to keep you as a valued customer.",
		},
		{
			AIType:      session.AITypeDelete,
			Title:       "Before you delete your account",
			Description: "We're sorry to see you go. Can we chat briefly about your decision to delete your account?",
		},
		{
			AIType:      session.AITypeSubscriber,
			Title:       "Welcome back!",
			Description: "We're glad to have you back. How can we assist you today?",
		},
		{
			AIType:      session.AITypePresubscription,
			Title:       "Before you subscribe",
			Description: "Before you subscribe, let's make sure all your questions are answered.",
		},
		{
			AIType:      session.AITypePrecancel,
			Title:       "Before you cancel",
			Description: "Before you cancel, we'd like to understand your concerns and see if there's a way we can address them.",
		},
	}
}
