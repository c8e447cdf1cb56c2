// internal/engine/service.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logdeck/internal/model"
	"logdeck/internal/source"
)

const (
	// DefaultTail is the number of lines fetched on a snapshot load.
	DefaultTail = 500

	// stopWait bounds how long StopFollow waits for the session goroutine
	// after cancelling it.
	stopWait = 1500 * time.Millisecond
)

// State aggregates everything the front ends operate on for one service:
// its descriptor, the bounded line buffer, the display filter, the current
// source and the active follow session, if any.
type State struct {
	desc     model.ServiceDescriptor
	resolver *source.Resolver
	buf      *Buffer

	mu       sync.Mutex
	filter   Filter
	tail     int
	follow   bool
	override string
	src      model.SourceRef
	sess     *session

	onPrefs func(Prefs)
}

// View is the read-side of a service handed to front ends for rendering.
type View struct {
	Service    string
	Source     model.SourceRef
	Follow     bool
	Tail       int
	Level      Level
	TextFilter string
	Lines      []string
	Total      int
	Matched    int
}

func NewState(desc model.ServiceDescriptor, resolver *source.Resolver, capacity int) *State {
	return &State{
		desc:     desc,
		resolver: resolver,
		buf:      NewBuffer(capacity),
		tail:     DefaultTail,
		filter:   Filter{Level: LevelAny},
		src:      model.SourceRef{Kind: model.SourceUnknown},
	}
}

// Name returns the service's friendly name.
func (s *State) Name() string {
	return s.desc.Name
}

// Buffer exposes the underlying line buffer for incremental readers.
func (s *State) Buffer() *Buffer {
	return s.buf
}

// Filter returns the current display filter.
func (s *State) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// FollowEnabled reports whether a follow session is active.
func (s *State) FollowEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow
}

// Load replaces the buffer contents with the trailing tail lines of the
// resolved source. Any active follow session is stopped first and its stop
// is awaited, so a superseded session cannot append stale lines into the
// freshly loaded buffer. Errors degrade to synthetic buffer lines.
func (s *State) Load(ctx context.Context) {
	s.StopFollow()

	s.mu.Lock()
	tail := s.tail
	desc := s.effectiveLocked()
	s.mu.Unlock()

	src, notes := s.resolver.Resolve(ctx, desc)
	lines, err := src.Snapshot(ctx, tail)

	s.buf.Clear()
	for _, note := range notes {
		s.buf.Append(note)
	}

	if err != nil && src.Ref().Kind == model.SourceDocker {
		// One fallback attempt: the container resolved but its logs did
		// not come through. Same policy as the follow session.
		s.buf.Append(tagFor(model.SourceDocker) + err.Error())
		src = source.NewFileSource(desc.File)
		lines, err = src.Snapshot(ctx, tail)
	}
	if err != nil {
		s.buf.Append(tagFor(src.Ref().Kind) + err.Error())
	} else {
		for _, line := range lines {
			s.buf.Append(line)
		}
	}

	ref := src.Ref()
	s.mu.Lock()
	s.src = ref
	s.mu.Unlock()

	s.buf.Append(fmt.Sprintf("[info] Loaded last %d lines from %s", tail, ref))
}

// Reload re-runs Load and restores follow if it was enabled.
func (s *State) Reload(ctx context.Context) {
	wasFollowing := s.FollowEnabled()
	s.Load(ctx)
	if wasFollowing {
		s.StartFollow()
	}
}

// SetTail sets the snapshot tail size. Takes effect on the next load.
func (s *State) SetTail(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	s.tail = n
	s.mu.Unlock()
	s.notifyPrefs()
}

// Tail returns the configured tail size.
func (s *State) Tail() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tail
}

// SetLevel sets the level filter. Unknown levels reset to ANY.
func (s *State) SetLevel(level string) Level {
	l, _ := ParseLevel(level)
	s.mu.Lock()
	s.filter.Level = l
	s.mu.Unlock()
	s.notifyPrefs()
	return l
}

// SetTextFilter sets the case-insensitive substring filter. Empty clears it.
func (s *State) SetTextFilter(text string) {
	s.mu.Lock()
	s.filter.Text = text
	s.mu.Unlock()
	s.notifyPrefs()
}

// OverrideContainer pins the service to an explicit container identifier,
// bypassing the matching heuristic. Empty clears the override. The caller
// reloads afterwards.
func (s *State) OverrideContainer(id string) {
	s.mu.Lock()
	s.override = id
	s.mu.Unlock()
	s.notifyPrefs()
}

// Override returns the manual container override, if set.
func (s *State) Override() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.override
}

// Render returns the filtered lines plus the state a front end displays.
// Never blocks on I/O; safe to call at any rate from any goroutine.
func (s *State) Render() View {
	s.mu.Lock()
	v := View{
		Service:    s.desc.Name,
		Source:     s.src,
		Follow:     s.follow,
		Tail:       s.tail,
		Level:      s.filter.Level,
		TextFilter: s.filter.Text,
	}
	f := s.filter
	s.mu.Unlock()

	v.Total = s.buf.Len()
	v.Lines = s.buf.Filtered(f)
	v.Matched = len(v.Lines)
	return v
}

// effectiveLocked returns the descriptor with the manual override applied.
// Caller holds s.mu.
func (s *State) effectiveLocked() model.ServiceDescriptor {
	desc := s.desc
	if s.override != "" {
		desc.Container = s.override
	}
	return desc
}

func (s *State) setSource(ref model.SourceRef) {
	s.mu.Lock()
	s.src = ref
	s.mu.Unlock()
}

func (s *State) notifyPrefs() {
	s.mu.Lock()
	cb := s.onPrefs
	p := Prefs{
		Service:           s.desc.Name,
		Tail:              s.tail,
		Level:             string(s.filter.Level),
		TextFilter:        s.filter.Text,
		ContainerOverride: s.override,
	}
	s.mu.Unlock()
	if cb != nil {
		cb(p)
	}
}

func tagFor(kind model.SourceKind) string {
	switch kind {
	case model.SourceDocker:
		return "[docker] "
	case model.SourceFile:
		return "[file] "
	default:
		return "[info] "
	}
}
