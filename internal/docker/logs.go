// internal/docker/logs.go
package docker

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// TailLogs fetches the trailing n log lines of a container without following.
func (c *Client) TailLogs(ctx context.Context, id string, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, tailTimeout)
	defer cancel()

	options := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(max(0, n)),
	}

	reader, err := c.cli.ContainerLogs(ctx, id, options)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var lines []string
	scanner := newLogScanner(demuxLogStream(reader))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return lines, err
	}

	return lines, nil
}

// FollowLogs streams container log lines until the returned cancel func is
// called or the stream ends. The error channel reports at most one error;
// both channels are closed when the stream goroutine exits.
func (c *Client) FollowLogs(ctx context.Context, id string, tail int) (<-chan string, <-chan error, func()) {
	lines := make(chan string)
	errs := make(chan error, 1)

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(lines)
		defer close(errs)

		options := container.LogsOptions{
			ShowStdout: true,
			ShowStderr: true,
			Follow:     true,
			Tail:       strconv.Itoa(max(0, tail)),
		}

		reader, err := c.cli.ContainerLogs(ctx, id, options)
		if err != nil {
			errs <- err
			return
		}
		defer reader.Close()

		scanner := newLogScanner(demuxLogStream(reader))
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil &&
			!errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			errs <- err
		}
	}()

	return lines, errs, cancel
}

// newLogScanner builds a line scanner with headroom for long log lines.
func newLogScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}

// demuxLogStream strips the stdout/stderr multiplexing frames the daemon
// emits for containers running without a TTY. The frame header is sniffed
// rather than assumed: a TTY container's stream has no headers and passes
// through untouched. Frames must be parsed as frames, not per line; the
// 4-byte payload length can itself contain a newline byte, which would split
// a naive line-based strip mid-header.
func demuxLogStream(r io.Reader) io.Reader {
	br := bufio.NewReader(r)

	head, err := br.Peek(8)
	if err != nil || len(head) < 8 {
		return br
	}
	if head[0] > 2 || head[1] != 0 || head[2] != 0 || head[3] != 0 {
		// No mux header, the container runs with a TTY.
		return br
	}

	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, br)
		pw.CloseWithError(err)
	}()
	return pr
}
