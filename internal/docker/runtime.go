// internal/docker/runtime.go
package docker

import (
	"context"

	"logdeck/internal/model"
)

// Runtime is the container-runtime surface the log engine depends on.
// Keeping it an interface allows a fake runtime in tests.
type Runtime interface {
	Available(ctx context.Context) error
	ListContainers(ctx context.Context) ([]model.Container, error)
	TailLogs(ctx context.Context, id string, n int) ([]string, error)
	FollowLogs(ctx context.Context, id string, tail int) (<-chan string, <-chan error, func())
	RemoteLabel() string
}

var _ Runtime = (*Client)(nil)
