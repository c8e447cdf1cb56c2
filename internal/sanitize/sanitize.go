// internal/sanitize/sanitize.go
package sanitize

import (
	"regexp"
	"strings"
)

// CSI sequences: ESC '[' parameter bytes 0x30-0x3F, intermediate bytes
// 0x20-0x2F, then one final byte 0x40-0x7E.
var ansiEscape = regexp.MustCompile("\x1b\\[[0-?]*[ -/]*[@-~]")

const tabWidth = 4

// Line strips terminal escape sequences and non-printable bytes from a raw
// log line. Tabs are expanded to spaces, printable ASCII and runes >= U+00A0
// pass through unchanged so multi-byte text is never mangled. Invalid UTF-8
// decodes to the replacement rune. Pure and idempotent.
func Line(raw string) string {
	s := ansiEscape.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		case r >= 0xA0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
