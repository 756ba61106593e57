// Package ignoremark finds the source ranges protected by a
// #_:lispfmt/ignore discard marker (spec.md §4.4).
package ignoremark

import "github.com/basilforge/lispfmt/pkg/syntax"

// LineRange is an inclusive, 1-indexed line range.
type LineRange struct {
	Start int
	End   int
}

// ByteRange is a half-open byte range.
type ByteRange struct {
	Start int
	End   int
}

// Sentinel is the keyword text a discard form's sole named child must
// have for that discard to be recognized as an ignore marker.
const Sentinel = ":lispfmt/ignore"

// Result holds every range discovered by a Collect walk.
type Result struct {
	LineRanges []LineRange
	ByteRanges []ByteRange
}

// Collect walks root depth-first over named children, recording the
// byte and line range of every form protected by an ignore marker.
// Back-to-back markers chain naturally: a marker's target that is
// itself a marker gets evaluated in turn, protecting its own next
// sibling, without any special-casing beyond the single-successor
// rule below.
func Collect(root *syntax.Node) Result {
	var res Result
	if root != nil {
		collectChildren(root, &res)
	}
	return res
}

func collectChildren(n *syntax.Node, res *Result) {
	children := n.NamedChildren()
	for i, c := range children {
		if isMarker(c) {
			if i+1 < len(children) {
				target := children[i+1]
				res.LineRanges = append(res.LineRanges, LineRange{Start: target.StartLine(), End: target.EndLine()})
				res.ByteRanges = append(res.ByteRanges, ByteRange{Start: target.StartByte(), End: target.EndByte()})
			}
			continue
		}
		if i > 0 && isMarker(children[i-1]) {
			// c is the form the preceding marker already protects;
			// nothing inside it needs independent scanning.
			continue
		}
		collectChildren(c, res)
	}
}

func isMarker(n *syntax.Node) bool {
	if n.Kind() != syntax.KindDiscard {
		return false
	}
	if n.NamedChildCount() != 1 {
		return false
	}
	kw := n.NamedChild(0)
	return kw.Kind() == syntax.KindKeyword && kw.Text() == Sentinel
}
