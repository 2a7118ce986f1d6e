package dialog

import "github.com/resubscribe/resubscribe-go/internal/model/session"

// Store exposes default copy lookup for dialog rendering.
type Store interface {
	List() []Copy
	FindByAIType(aiType session.AIType) (Copy, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Copy
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied copy.
func NewMemoryStore(items []Copy) *MemoryStore {
	return &MemoryStore{items: append([]Copy(nil), items...)}
}

// List returns every known copy entry.
func (s *MemoryStore) List() []Copy {
	return append([]Copy(nil), s.items...)
}

// FindByAIType looks up the copy for an ai type.
func (s *MemoryStore) FindByAIType(aiType session.AIType) (Copy, bool) {
	for _, item := range s.items {
		if item.AIType == aiType {
			return item, true
		}
	}
	return Copy{}, false
}
