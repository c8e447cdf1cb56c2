// internal/engine/filter.go
package engine

import (
	"regexp"
	"strings"
)

// Level is a coarse severity used only for display filtering. The engine
// does not parse log structure; a level matches when it appears in the line
// as a whole word.
type Level string

const (
	LevelAny      Level = "ANY"
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarn     Level = "WARN"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Levels lists the selectable levels in display order.
var Levels = []Level{LevelAny, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}

// Word-bounded so filtering by INFO does not match INFORMATION.
var levelPatterns = func() map[Level]*regexp.Regexp {
	m := make(map[Level]*regexp.Regexp, len(Levels))
	for _, l := range Levels {
		if l == LevelAny {
			continue
		}
		m[l] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(string(l)) + `\b`)
	}
	return m
}()

// ParseLevel normalizes a user-supplied level name. Unknown names report ok
// false.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if l == "" {
		return LevelAny, true
	}
	for _, known := range Levels {
		if l == known {
			return l, true
		}
	}
	return LevelAny, false
}

// Filter is the consumer-side display filter: a level and a free-text
// substring. The zero value passes everything.
type Filter struct {
	Level Level
	Text  string
}

// Match reports whether a line passes both active filters.
func (f Filter) Match(line string) bool {
	if f.Level != "" && f.Level != LevelAny {
		re, ok := levelPatterns[f.Level]
		if ok && !re.MatchString(line) {
			return false
		}
	}
	if f.Text != "" && !strings.Contains(strings.ToLower(line), strings.ToLower(f.Text)) {
		return false
	}
	return true
}
