// internal/source/errors.go
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/docker/docker/errdefs"
)

// Error taxonomy for source failures. Everything here is surfaced to the
// user as a synthetic buffer line, never as a crash.
var (
	ErrUnavailable = errors.New("source unavailable")
	ErrNotFound    = errors.New("not found")
	ErrNotRunning  = errors.New("not running")
	ErrPermission  = errors.New("permission denied")
	ErrIsDirectory = errors.New("is a directory")
	ErrTimeout     = errors.New("timed out")
	ErrStreamEnded = errors.New("stream ended")
)

// classifyDocker maps daemon errors onto the taxonomy with a hint the
// operator can act on.
func classifyDocker(err error, id string) error {
	if err == nil {
		return nil
	}
	switch {
	case errdefs.IsNotFound(err):
		return fmt.Errorf("%w: container %q. Is it created and running?", ErrNotFound, id)
	case errdefs.IsUnauthorized(err) || errdefs.IsForbidden(err):
		return fmt.Errorf("%w: add your user to the docker group or use sudo", ErrPermission)
	case errors.Is(err, context.DeadlineExceeded) || errdefs.IsDeadline(err):
		return fmt.Errorf("%w: docker request for %q", ErrTimeout, id)
	case strings.Contains(err.Error(), "is not running"):
		return fmt.Errorf("%w: container %q", ErrNotRunning, id)
	case strings.Contains(strings.ToLower(err.Error()), "permission denied"):
		return fmt.Errorf("%w: add your user to the docker group or use sudo", ErrPermission)
	default:
		return err
	}
}

// classifyFile maps filesystem errors onto the taxonomy.
func classifyFile(err error, path string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrIsDirectory):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: file %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: reading %s", ErrPermission, path)
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}
}
