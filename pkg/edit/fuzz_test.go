package edit_test

import (
	"testing"
	"unicode/utf8"

	"github.com/basilforge/lispfmt/pkg/edit"
)

// runeBoundary reports whether byte offset i in s falls on a rune
// boundary: the start or end of s, or the first byte of a rune.
func runeBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	if i < 0 || i > len(s) {
		return false
	}
	return utf8.RuneStart(s[i])
}

// FuzzApply exercises Apply's byte-preservation and length invariants
// (spec.md §8 invariant 6, edit non-overlap, applied here to the
// single-edit case): the bytes before StartByte and after EndByte
// must survive untouched, Replacement lands exactly where the
// original range was, and the result's byte length is fully
// accounted for by the substitution arithmetic.
func FuzzApply(f *testing.F) {
	f.Add("hello", 0, 5, "world")
	f.Add("hello world", 5, 5, " beautiful")
	f.Add("abcdef", 0, 0, "prefix")
	f.Add("abcdef", 6, 6, "suffix")
	f.Add("abcdef", 2, 4, "")
	f.Add("(λ a b)", len("(λ"), len("(λ")+1, "\n  ")
	f.Add("(é b c)", len("(é"), len("(é")+1, "\n ")

	f.Fuzz(func(t *testing.T, content string, start, end int, newText string) {
		if !utf8.ValidString(content) || !utf8.ValidString(newText) {
			t.Skip("fuzz input is not valid UTF-8")
		}
		if start < 0 || end < start || end > len(content) {
			t.Skip("out of range edit")
		}
		if !runeBoundary(content, start) || !runeBoundary(content, end) {
			t.Skip("edit does not fall on a rune boundary")
		}

		result, err := edit.Apply([]byte(content), []edit.Edit{
			{StartByte: start, EndByte: end, Replacement: newText},
		})
		if err != nil {
			t.Fatalf("Apply returned an error for a well-formed edit: %v", err)
		}

		wantLen := len(content) - (end - start) + len(newText)
		if len(result) != wantLen {
			t.Fatalf("result length = %d, want %d", len(result), wantLen)
		}

		if got, want := string(result[:start]), content[:start]; got != want {
			t.Fatalf("bytes before edit changed: got %q, want %q", got, want)
		}
		if got, want := string(result[start:start+len(newText)]), newText; got != want {
			t.Fatalf("replacement text wrong: got %q, want %q", got, want)
		}
		if got, want := string(result[start+len(newText):]), content[end:]; got != want {
			t.Fatalf("bytes after edit changed: got %q, want %q", got, want)
		}
	})
}
