// Package textindex converts UTF-8 byte offsets, as produced by the
// parser, into character (rune) indices, as required before splicing
// an edit into a source buffer (spec.md §4.2).
package textindex

import "unicode/utf8"

// ByteToChar returns the character index corresponding to byte offset
// b within s: the number of runes in s[:b]. Offsets past the end of s
// saturate at the total rune count; negative offsets saturate at 0.
//
// Go source strings carry no surrogate pairs the way UTF-16-backed
// runtimes do, so a single left-to-right rune scan is sufficient here;
// the byte-to-char translation is still performed, rather than
// splicing directly on byte offsets, to keep pkg/edit's contract
// independent of the host language's string representation.
func ByteToChar(s []byte, b int) int {
	if b <= 0 {
		return 0
	}
	if b >= len(s) {
		return utf8.RuneCount(s)
	}
	return utf8.RuneCount(s[:b])
}
