// internal/source/tail.go
package source

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Rough bytes-per-line guess used to size the first backwards read.
const avgLineLen = 100

// ReadLastLines returns the trailing n lines of the file at path, oldest
// first, without reading the whole file: blocks are read backwards from the
// end in geometrically growing chunks until enough newlines are captured or
// the start of the file is reached. Invalid UTF-8 is replaced, never fatal.
func ReadLastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, classifyFile(err, path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, classifyFile(err, path)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w, not a file: %s", ErrIsDirectory, path)
	}

	size := fi.Size()
	chunk := int64(n * avgLineLen)
	pos := size

	var buf []byte
	for pos > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		readSize := chunk
		if readSize > pos {
			readSize = pos
		}
		pos -= readSize

		block := make([]byte, readSize)
		if _, err := f.ReadAt(block, pos); err != nil {
			return nil, classifyFile(err, path)
		}
		buf = append(block, buf...)
		chunk *= 2
	}

	raw := bytes.Split(buf, []byte{'\n'})
	// A trailing newline produces one empty trailing record.
	if len(raw) > 0 && len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}
	if len(raw) > n {
		raw = raw[len(raw)-n:]
	}

	lines := make([]string, 0, len(raw))
	for _, b := range raw {
		b = bytes.TrimSuffix(b, []byte{'\r'})
		lines = append(lines, strings.ToValidUTF8(string(b), "�"))
	}
	return lines, nil
}
