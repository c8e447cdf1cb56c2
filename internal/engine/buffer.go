// internal/engine/buffer.go
package engine

import (
	"sync"

	"logdeck/internal/sanitize"
)

// DefaultCapacity bounds the in-memory history per service.
const DefaultCapacity = 5000

// Buffer is a bounded FIFO of sanitized log lines for one service. Append
// is the only mutator; readers take a copy under the lock and filter
// outside it, so a slow render never blocks the writer beyond the copy.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	cap   int
	total uint64 // lines ever appended, for incremental readers
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{cap: capacity}
}

// Append sanitizes the line and stores it, evicting the oldest line when
// over capacity. Safe for concurrent use with the read methods.
func (b *Buffer) Append(line string) {
	clean := sanitize.Line(line)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, clean)
	b.total++
	if len(b.lines) > b.cap {
		b.lines = b.lines[len(b.lines)-b.cap:]
	}
}

// Clear drops all stored lines. The total counter keeps running so
// incremental readers do not replay.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// Len returns the number of stored lines.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Snapshot returns a copy of the stored lines in append order.
func (b *Buffer) Snapshot() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Filtered returns the lines passing f, in append order. Computed fresh on
// every call; the buffer is bounded and small, so correctness wins over
// caching.
func (b *Buffer) Filtered(f Filter) []string {
	data := b.Snapshot()
	out := make([]string, 0, len(data))
	for _, line := range data {
		if f.Match(line) {
			out = append(out, line)
		}
	}
	return out
}

// Since returns the lines appended after cursor (as returned by a previous
// call, 0 for "start of history") that are still buffered, plus the new
// cursor. Lines evicted before the read are skipped.
func (b *Buffer) Since(cursor uint64) ([]string, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if cursor >= b.total {
		return nil, b.total
	}
	missed := b.total - cursor
	start := 0
	if missed < uint64(len(b.lines)) {
		start = len(b.lines) - int(missed)
	}
	out := make([]string, len(b.lines)-start)
	copy(out, b.lines[start:])
	return out, b.total
}
