// Package violations scans source text for lines whose character
// width exceeds a configured limit (spec.md §4.3).
package violations

import (
	"strings"
	"unicode/utf8"
)

// Violation is a single line whose character count exceeds the limit
// it was scanned against.
type Violation struct {
	// Line is the 1-indexed line number.
	Line int
	// Length is the line's character (rune) count.
	Length int
}

// Scan splits source on "\n" into 1-indexed lines and reports every
// line whose rune count exceeds limit. It never mutates source, and
// makes no attempt to distinguish ignored lines — that filtering
// happens one layer up, in pkg/engine, once ignore ranges are known.
func Scan(source []byte, limit int) []Violation {
	lines := strings.Split(string(source), "\n")

	var out []Violation
	for i, line := range lines {
		length := utf8.RuneCountInString(line)
		if length > limit {
			out = append(out, Violation{Line: i + 1, Length: length})
		}
	}
	return out
}
