// Package edit applies a batch of non-overlapping byte-range
// replacements to a source buffer (spec.md §4.8). Adapted from the
// teacher's pkg/fix (TextEdit/ApplyEdits/PrepareEdits), reworked to
// splice on a character-index view (pkg/textindex) instead of a raw
// byte cursor, and to sort descending rather than ascending, per
// spec.md §4.2/§4.8's translate-then-splice contract.
package edit

import (
	"fmt"
	"sort"

	"github.com/basilforge/lispfmt/pkg/textindex"
)

// Edit replaces the bytes in [StartByte, EndByte) with Replacement.
type Edit struct {
	StartByte   int
	EndByte     int
	Replacement string
}

// ValidationError describes a single malformed edit.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartByte, e.Edit.EndByte, e.Message)
}

// ConflictError describes two edits that share bytes.
type ConflictError struct {
	First, Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartByte, e.First.EndByte, e.Second.StartByte, e.Second.EndByte)
}

// Validate checks that every edit's range is well-formed for a
// buffer of length sourceLen.
func Validate(edits []Edit, sourceLen int) error {
	for _, e := range edits {
		if e.StartByte < 0 {
			return &ValidationError{Edit: e, Message: "start byte is negative"}
		}
		if e.EndByte < e.StartByte {
			return &ValidationError{Edit: e, Message: "end byte precedes start byte"}
		}
		if e.EndByte > sourceLen {
			return &ValidationError{Edit: e, Message: fmt.Sprintf("end byte %d exceeds source length %d", e.EndByte, sourceLen)}
		}
	}
	return nil
}

// sortDescending orders edits by StartByte, latest first, so that
// applying them in sequence never invalidates an edit still queued
// (spec.md §4.8).
func sortDescending(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartByte != edits[j].StartByte {
			return edits[i].StartByte > edits[j].StartByte
		}
		return edits[i].EndByte > edits[j].EndByte
	})
}

// detectOverlaps returns an error naming the first pair of adjacent
// edits (in descending order) that share a byte.
func detectOverlaps(sorted []Edit) error {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].EndByte > sorted[i-1].StartByte {
			return &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return nil
}

// Prepare validates edits, then returns them sorted descending,
// erroring on any malformed or overlapping pair. Unlike the teacher's
// PrepareEditsFiltered, overlaps here are never silently merged or
// dropped: an overlap always means the planner produced a bad batch,
// an internal invariant violation the caller should surface, not
// paper over.
func Prepare(edits []Edit, sourceLen int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, sourceLen); err != nil {
		return nil, err
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sortDescending(sorted)

	if err := detectOverlaps(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// Apply splices each edit's Replacement into source, translating byte
// offsets to character indices first (pkg/textindex) so the splice
// itself operates on a rune slice rather than raw bytes.
func Apply(source []byte, edits []Edit) ([]byte, error) {
	sorted, err := Prepare(edits, len(source))
	if err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return source, nil
	}

	runes := []rune(string(source))
	for _, e := range sorted {
		startChar := textindex.ByteToChar(source, e.StartByte)
		endChar := textindex.ByteToChar(source, e.EndByte)

		replacement := []rune(e.Replacement)
		next := make([]rune, 0, len(runes)-(endChar-startChar)+len(replacement))
		next = append(next, runes[:startChar]...)
		next = append(next, replacement...)
		next = append(next, runes[endChar:]...)
		runes = next
	}

	return []byte(string(runes)), nil
}
