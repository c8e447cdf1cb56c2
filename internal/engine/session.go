// internal/engine/session.go
package engine

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"logdeck/internal/model"
	"logdeck/internal/source"
)

// session is one active follow activity. It exists only while follow is
// enabled; at most one per State at any time.
type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartFollow starts a follow session for the service. A no-op while a
// session is already active.
func (s *State) StartFollow() {
	s.mu.Lock()
	if s.sess != nil {
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{cancel: cancel, done: make(chan struct{})}
	s.sess = sess
	s.follow = true
	tail := s.tail
	desc := s.effectiveLocked()
	s.mu.Unlock()

	log.WithField("service", desc.Name).Debug("follow session starting")
	go s.runFollow(ctx, sess, desc, tail)
}

// StopFollow cancels the active session and waits, bounded, for it to wind
// down. Safe to call when no session is active; a second call is a no-op.
func (s *State) StopFollow() {
	s.mu.Lock()
	sess := s.sess
	s.sess = nil
	s.follow = false
	s.mu.Unlock()

	if sess == nil {
		return
	}

	sess.cancel()
	select {
	case <-sess.done:
	case <-time.After(stopWait):
		// The session is stuck in a blocking read; cancellation has
		// already closed the underlying stream, so it unwinds on its own.
		log.WithField("service", s.desc.Name).Debug("follow session stop wait timed out")
	}
}

// ToggleFollow flips follow on or off.
func (s *State) ToggleFollow() {
	if s.FollowEnabled() {
		s.StopFollow()
	} else {
		s.StartFollow()
	}
}

// runFollow is the session goroutine: resolve the source, open the stream
// and pump lines into the buffer until cancelled or the stream ends. A
// container stream that fails to open or exits triggers exactly one
// transparent fallback to file-follow on the same buffer.
func (s *State) runFollow(ctx context.Context, sess *session, desc model.ServiceDescriptor, tail int) {
	defer close(sess.done)
	defer s.sessionEnded(sess)

	src, notes := s.resolver.Resolve(ctx, desc)
	for _, note := range notes {
		s.buf.Append(note)
	}

	// Already on the file source means the one fallback is spent.
	fellBack := src.Ref().Kind == model.SourceFile

	stream, err := src.Follow(ctx, tail)
	if err != nil {
		if !fellBack {
			s.buf.Append(tagFor(src.Ref().Kind) + err.Error() + ". Falling back to file follow.")
			src = source.NewFileSource(desc.File)
			fellBack = true
			stream, err = src.Follow(ctx, tail)
		}
		if err != nil {
			s.buf.Append(tagFor(src.Ref().Kind) + err.Error())
			return
		}
	}
	defer func() { stream.Stop() }()

	s.setSource(src.Ref())
	s.announceFollow(src.Ref(), tail)

	lines, errs := stream.Lines, stream.Errs
	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.buf.Append(tagFor(src.Ref().Kind) + err.Error())

		case line, ok := <-lines:
			if ok {
				s.buf.Append(line)
				continue
			}
			// Stream ended while follow is still desired.
			if ctx.Err() != nil {
				return
			}
			if !fellBack {
				s.buf.Append("[docker] Log stream ended. Falling back to file follow.")
				stream.Stop()
				src = source.NewFileSource(desc.File)
				fellBack = true

				next, err := src.Follow(ctx, tail)
				if err != nil {
					s.buf.Append(tagFor(model.SourceFile) + err.Error())
					return
				}
				stream = next
				lines, errs = stream.Lines, stream.Errs
				s.setSource(src.Ref())
				s.announceFollow(src.Ref(), tail)
				continue
			}
			// Not an automatic retry loop: tell the user and stop rather
			// than spinning on a dead source.
			s.buf.Append(tagFor(src.Ref().Kind) + "Follow ended. Toggle follow to restart or reload.")
			return
		}
	}
}

func (s *State) announceFollow(ref model.SourceRef, tail int) {
	switch ref.Kind {
	case model.SourceDocker:
		s.buf.Append(fmt.Sprintf("[docker] Following container '%s' (tail=%d)", ref.ID, tail))
	default:
		s.buf.Append(fmt.Sprintf("[file] Following file '%s'", ref.ID))
	}
}

// sessionEnded clears the session slot when the goroutine exits on its own.
// A session superseded by StopFollow leaves the slot untouched.
func (s *State) sessionEnded(sess *session) {
	s.mu.Lock()
	if s.sess == sess {
		s.sess = nil
		s.follow = false
	}
	s.mu.Unlock()
	log.WithField("service", s.desc.Name).Debug("follow session ended")
}
