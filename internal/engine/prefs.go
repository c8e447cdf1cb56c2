// internal/engine/prefs.go
package engine

// Prefs is the persisted slice of view state for one service: everything
// worth restoring across runs. Log lines themselves are never persisted.
type Prefs struct {
	Service           string
	Tail              int
	Level             string
	TextFilter        string
	ContainerOverride string
}

// PrefsStore persists view preferences across runs. Implementations must
// tolerate unknown services and never block for long; a failing store
// degrades to in-memory defaults.
type PrefsStore interface {
	LoadPrefs(service string) (Prefs, bool, error)
	SavePrefs(p Prefs) error
}

// applyPrefs restores persisted preferences without notifying the store.
func (s *State) applyPrefs(p Prefs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Tail > 0 {
		s.tail = p.Tail
	}
	if l, ok := ParseLevel(p.Level); ok {
		s.filter.Level = l
	}
	s.filter.Text = p.TextFilter
	s.override = p.ContainerOverride
}
