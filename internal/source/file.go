// internal/source/file.go
package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"logdeck/internal/model"
)

// FollowPollInterval is how often a file follow checks for new data and for
// truncation/rotation when the file is idle.
const FollowPollInterval = 250 * time.Millisecond

// FileSource reads logs from a host file.
type FileSource struct {
	path string
	poll time.Duration
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, poll: FollowPollInterval}
}

// WithPollInterval overrides the follow poll interval. Used by tests to keep
// rotation scenarios fast.
func (s *FileSource) WithPollInterval(d time.Duration) *FileSource {
	s.poll = d
	return s
}

func (s *FileSource) Ref() model.SourceRef {
	return model.SourceRef{Kind: model.SourceFile, ID: s.path}
}

func (s *FileSource) Snapshot(ctx context.Context, n int) ([]string, error) {
	return ReadLastLines(s.path, n)
}

// Follow opens the file, seeks to the current end and streams new lines.
// Before each read the current file size is compared with the read offset;
// a shrinking file means rotation or truncation, in which case the handle
// is reopened and reseeked to the new end. Lines written before the
// truncation are never replayed.
func (s *FileSource) Follow(ctx context.Context, _ int) (*Stream, error) {
	f, offset, err := openAtEnd(s.path)
	if err != nil {
		return nil, classifyFile(err, s.path)
	}

	lines := make(chan string)
	errs := make(chan error, 1)
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(lines)
		defer close(errs)
		defer func() { f.Close() }()

		reader := bufio.NewReader(f)
		pending := ""

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			// Rotation/truncation check: the file shrank below what
			// was already consumed.
			if fi, err := os.Stat(s.path); err == nil && fi.Size() < offset {
				if !send(ctx, lines, "[file] Detected truncation/rotation. Reopening and seeking to end.") {
					return
				}
				f.Close()
				nf, newOffset, err := openAtEnd(s.path)
				if err != nil {
					errs <- classifyFile(err, s.path)
					return
				}
				f = nf
				offset = newOffset
				reader.Reset(f)
				pending = ""
			}

			chunk, err := reader.ReadString('\n')
			offset += int64(len(chunk))

			switch {
			case err == nil:
				line := pending + strings.TrimRight(chunk, "\r\n")
				pending = ""
				if !send(ctx, lines, line) {
					return
				}
			case errors.Is(err, io.EOF):
				// Hold incomplete lines until the newline arrives.
				pending += chunk
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.poll):
				}
			default:
				errs <- classifyFile(err, s.path)
				return
			}
		}
	}()

	return &Stream{Lines: lines, Errs: errs, stop: cancel}, nil
}

func openAtEnd(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, offset, nil
}

func send(ctx context.Context, ch chan<- string, line string) bool {
	select {
	case ch <- line:
		return true
	case <-ctx.Done():
		return false
	}
}
