package planner

import (
	"fmt"
	"strings"

	"github.com/basilforge/lispfmt/pkg/edit"
	"github.com/basilforge/lispfmt/pkg/rules"
	"github.com/basilforge/lispfmt/pkg/syntax"
)

// Plan generates the edits that break n's remaining named children
// (after its rule's keep-count) onto their own lines at the rule's
// indent column, grouping in pairs when the rule calls for it
// (spec.md §4.7). It returns nil when n has too few children to break
// under its rule. A non-nil error signals an internal invariant
// violation, not a problem with n itself.
func Plan(n *syntax.Node, indents map[string]rules.Tag) ([]edit.Edit, error) {
	tag, ok := rules.EffectiveRule(n, indents)
	children := n.NamedChildren()

	keep := rules.KeepCount(tag, ok)
	if keep > len(children) {
		return nil, nil
	}

	col0 := n.StartPoint().Column
	indentCol := rules.IndentColumn(tag, ok, col0)
	if indentCol < 0 {
		return nil, fmt.Errorf("computed negative indent column for %s at %d:%d", n.Kind(), n.StartPoint().Row, col0)
	}
	indent := strings.Repeat(" ", indentCol)

	pairs := breakPairs(children, keep, rules.PairGrouping(tag, ok))

	var edits []edit.Edit
	for _, p := range pairs {
		prev, next := p[0], p[1]

		if next.Kind() == syntax.KindComment && next.StartLine() == prev.EndLine() {
			// An inline trailing comment stays attached to prev's line.
			continue
		}

		var replacement string
		if prev.Kind() == syntax.KindComment {
			// prev's own text already carries its trailing newline.
			replacement = indent
		} else {
			replacement = "\n" + indent
		}

		edits = append(edits, edit.Edit{
			StartByte:   prev.EndByte(),
			EndByte:     next.StartByte(),
			Replacement: replacement,
		})
	}

	return edits, nil
}

// breakPairs computes the (prev, next) break points a Plan call
// splices between: one per remaining child in the non-grouped case,
// or one per key/value pair when grouping is in effect, with a
// trailing lone element forming its own break point against the last
// full pair's value.
func breakPairs(children []*syntax.Node, keep int, grouped bool) [][2]*syntax.Node {
	var out [][2]*syntax.Node

	if !grouped {
		for i := keep; i < len(children); i++ {
			out = append(out, [2]*syntax.Node{children[i-1], children[i]})
		}
		return out
	}

	prev := children[keep-1]
	i := keep
	for i < len(children) {
		out = append(out, [2]*syntax.Node{prev, children[i]})
		if i+1 < len(children) {
			prev = children[i+1]
			i += 2
		} else {
			i++
		}
	}
	return out
}
