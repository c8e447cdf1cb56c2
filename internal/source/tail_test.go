// internal/source/tail_test.go
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLastLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"fewer lines than asked", "a\nb\n", 10, []string{"a", "b"}},
		{"exact count", "a\nb\nc\n", 3, []string{"a", "b", "c"}},
		{"trailing window", "a\nb\nc\nd\n", 2, []string{"c", "d"}},
		{"no trailing newline", "a\nb\nc", 2, []string{"b", "c"}},
		{"crlf endings", "a\r\nb\r\n", 2, []string{"a", "b"}},
		{"empty file", "", 5, []string{}},
		{"zero n", "a\nb\n", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			got, err := ReadLastLines(path, tt.n)
			if err != nil {
				t.Fatalf("ReadLastLines() error: %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLastLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLastLinesLargeFile(t *testing.T) {
	// Many lines forces multiple backwards reads.
	var b strings.Builder
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&b, "line number %d with some padding to make it realistic\n", i)
	}
	path := writeFile(t, b.String())

	got, err := ReadLastLines(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"line number 9997 with some padding to make it realistic",
		"line number 9998 with some padding to make it realistic",
		"line number 9999 with some padding to make it realistic",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadLastLines() = %q, want %q", got, want)
	}
}

func TestReadLastLinesInvalidUTF8(t *testing.T) {
	path := writeFile(t, "ok\nbad \xff\xfe bytes\n")

	got, err := ReadLastLines(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range got {
		if !strings.HasPrefix(line, "ok") && !strings.Contains(line, "�") {
			t.Errorf("invalid bytes not replaced: %q", line)
		}
	}
}

func TestReadLastLinesMissingFile(t *testing.T) {
	_, err := ReadLastLines(filepath.Join(t.TempDir(), "nope.log"), 5)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestReadLastLinesDirectory(t *testing.T) {
	_, err := ReadLastLines(t.TempDir(), 5)
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("error = %v, want ErrIsDirectory", err)
	}
}
