// Package planner finds breakable forms covering a violating line and
// generates the edits that spread one form's children across lines
// (spec.md §4.6-§4.7).
package planner

import (
	"github.com/basilforge/lispfmt/pkg/ignoremark"
	"github.com/basilforge/lispfmt/pkg/syntax"
)

// Candidates returns every breakable node whose line range contains
// line, is not covered by an ignored byte range, and has at least one
// pair of adjacent named children that both start on line — in
// outermost-first (pre-order) order, so the fix loop tries the
// broadest rewrite before descending into nested forms.
func Candidates(root *syntax.Node, line int, ignored []ignoremark.ByteRange) []*syntax.Node {
	var out []*syntax.Node
	visit(root, line, ignored, &out)
	return out
}

func visit(n *syntax.Node, line int, ignored []ignoremark.ByteRange, out *[]*syntax.Node) {
	if n == nil {
		return
	}
	if n.StartLine() > line || n.EndLine() < line {
		return
	}

	if isCandidate(n, line, ignored) {
		*out = append(*out, n)
	}

	for i := 0; i < n.NamedChildCount(); i++ {
		visit(n.NamedChild(i), line, ignored, out)
	}
}

func isCandidate(n *syntax.Node, line int, ignored []ignoremark.ByteRange) bool {
	if !n.Kind().Breakable() {
		return false
	}
	if inIgnored(n, ignored) {
		return false
	}

	children := n.NamedChildren()
	for i := 0; i+1 < len(children); i++ {
		if children[i].StartLine() == line && children[i+1].StartLine() == line {
			return true
		}
	}
	return false
}

func inIgnored(n *syntax.Node, ignored []ignoremark.ByteRange) bool {
	for _, r := range ignored {
		if n.StartByte() >= r.Start && n.EndByte() <= r.End {
			return true
		}
	}
	return false
}
