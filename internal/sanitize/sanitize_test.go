package sanitize

import "testing"

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"color codes", "\x1b[31merror\x1b[0m done", "error done"},
		{"cursor movement", "\x1b[2Jcleared", "cleared"},
		{"tab expansion", "a\tb", "a    b"},
		{"control bytes dropped", "a\x00b\x07c\x1bd", "abcd"},
		{"carriage return kept", "progress\r", "progress\r"},
		{"multibyte preserved", "tämä on ök", "tämä on ök"},
		{"high runes preserved", "日本語ログ", "日本語ログ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.in); got != tt.want {
				t.Errorf("Line(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"\x1b[1;32mgreen\x1b[0m",
		"tabs\there",
		"mixed \x1b[31m\tred\x00",
		"日本語 \x1b[0m text",
		string([]byte{0xff, 0xfe, 'o', 'k'}), // invalid utf-8
	}

	for _, in := range inputs {
		once := Line(in)
		twice := Line(once)
		if once != twice {
			t.Errorf("Line not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
