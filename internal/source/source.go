// internal/source/source.go
package source

import (
	"context"

	"logdeck/internal/docker"
	"logdeck/internal/model"
)

// Source is one concrete origin of log lines for a service: a container's
// log stream or a host file. The follow session and the snapshot loader are
// written once against this interface.
type Source interface {
	Ref() model.SourceRef

	// Snapshot returns the trailing n lines, oldest first.
	Snapshot(ctx context.Context, n int) ([]string, error)

	// Follow opens a continuous stream of new lines. Container sources
	// replay the trailing tail lines first; file sources start at the
	// current end of file.
	Follow(ctx context.Context, tail int) (*Stream, error)
}

// Stream delivers follow-mode lines until stopped or the source ends.
// Lines closing means the stream ended; Errs carries at most one error.
// Informational notices (rotation detected, etc.) arrive on Lines already
// tagged, so consumers treat them like any other line.
type Stream struct {
	Lines <-chan string
	Errs  <-chan error

	stop func()
}

// Stop cancels the stream and releases the underlying handle. Idempotent.
func (s *Stream) Stop() {
	if s.stop != nil {
		s.stop()
	}
}

// ContainerSource reads logs from a running container via the Docker API.
type ContainerSource struct {
	rt docker.Runtime
	id string
}

func NewContainerSource(rt docker.Runtime, id string) *ContainerSource {
	return &ContainerSource{rt: rt, id: id}
}

func (s *ContainerSource) Ref() model.SourceRef {
	id := s.id
	if label := s.rt.RemoteLabel(); label != "" {
		id = label + ":" + id
	}
	return model.SourceRef{Kind: model.SourceDocker, ID: id}
}

func (s *ContainerSource) Snapshot(ctx context.Context, n int) ([]string, error) {
	lines, err := s.rt.TailLogs(ctx, s.id, n)
	if err != nil {
		return nil, classifyDocker(err, s.id)
	}
	return lines, nil
}

func (s *ContainerSource) Follow(ctx context.Context, tail int) (*Stream, error) {
	lines, errs, cancel := s.rt.FollowLogs(ctx, s.id, tail)

	classified := make(chan error, 1)
	go func() {
		defer close(classified)
		for err := range errs {
			classified <- classifyDocker(err, s.id)
		}
	}()

	return &Stream{Lines: lines, Errs: classified, stop: cancel}, nil
}
