package session

import (
	"strings"

	"github.com/pkg/errors"
)

// AIType selects the conversation flavour and its default dialog copy.
type AIType string

const (
	AITypeIntent          AIType = "intent"
	AITypeChurn           AIType = "churn"
	AITypeDelete          AIType = "delete"
	AITypeSubscriber      AIType = "subscriber"
	AITypePresubscription AIType = "presubscription"
	AITypePrecancel       AIType = "precancel"
)

// ErrUnknownAIType is returned when an ai type tag is not recognised.
var ErrUnknownAIType = errors.New("unknown ai type")

// AITypes lists every supported ai type, canonical ones first.
func AITypes() []AIType {
	return []AIType{
		AITypeIntent,
		AITypeChurn,
		AITypeDelete,
		AITypeSubscriber,
		AITypePresubscription,
		AITypePrecancel,
	}
}

// Valid reports whether t is one of the supported tags.
func (t AIType) Valid() bool {
	for _, known := range AITypes() {
		if t == known {
			return true
		}
	}
	return false
}

func (t AIType) String() string {
	return string(t)
}

// ParseAIType converts a tag such as "churn" into an AIType.
func ParseAIType(raw string) (AIType, error) {
	t := AIType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", errors.Wrapf(ErrUnknownAIType, "%q", raw)
	}
	return t, nil
}
