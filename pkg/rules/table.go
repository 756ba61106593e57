// Package rules is the tagged-sum indent-rule table: a head-symbol
// name resolves to a Tag, and a Tag drives keep-count, indent-column,
// and pair-grouping decisions (spec.md §4.5). Deliberately a data
// table rather than a type hierarchy per spec.md §9's design note.
package rules

import "github.com/basilforge/lispfmt/pkg/syntax"

// Tag identifies one of the closed set of indent rules a form's head
// symbol can resolve to.
type Tag string

const (
	TagDefn          Tag = "defn"
	TagDef           Tag = "def"
	TagFn            Tag = "fn"
	TagBinding       Tag = "binding"
	TagIf            Tag = "if"
	TagCase          Tag = "case"
	TagCond          Tag = "cond"
	TagCondP         Tag = "condp"
	TagCondArrow     Tag = "cond->"
	TagTry           Tag = "try"
	TagDo            Tag = "do"
	TagMap           Tag = "map"
	TagBindingVector Tag = "binding-vector"
)

// DefaultTable is the built-in head-symbol -> Tag mapping. A config's
// indents map is merged over this table, config entries winning
// per-key (spec.md §3).
func DefaultTable() map[string]Tag {
	return map[string]Tag{
		"defn": TagDefn, "defn-": TagDefn, "defmacro": TagDefn, "defmethod": TagDefn,
		"def": TagDef, "defonce": TagDef,
		"fn": TagFn,
		"let": TagBinding, "if-let": TagBinding, "when-let": TagBinding,
		"loop": TagBinding, "binding": TagBinding, "with-open": TagBinding,
		"if": TagIf, "if-not": TagIf,
		"case":    TagCase,
		"cond":    TagCond,
		"condp":   TagCondP,
		"cond->":  TagCondArrow, "cond->>": TagCondArrow,
		"try": TagTry,
		"do":  TagDo,
	}
}

// EffectiveRule resolves node n's indent rule: a list node dispatches
// on its head symbol (config indents first, then the built-in table);
// a map node is always TagMap; a vector that is the second named
// child of a binding-tagged list is TagBindingVector. A set has no
// rule of its own -- it breaks one child per line with no pair
// grouping, the same as any other unrecognized form. Anything else
// has no rule (R = none).
func EffectiveRule(n *syntax.Node, indents map[string]Tag) (Tag, bool) {
	switch n.Kind() {
	case syntax.KindList:
		head := n.NamedChild(0)
		if head == nil || head.Kind() != syntax.KindSymbol {
			return "", false
		}
		name := head.Text()
		if tag, ok := indents[name]; ok {
			return tag, true
		}
		if tag, ok := DefaultTable()[name]; ok {
			return tag, true
		}
		return "", false

	case syntax.KindMap:
		return TagMap, true

	case syntax.KindVector:
		parent := n.Parent()
		if parent == nil || parent.Kind() != syntax.KindList {
			return "", false
		}
		parentTag, ok := EffectiveRule(parent, indents)
		if !ok || parentTag != TagBinding {
			return "", false
		}
		if parent.NamedChildCount() > 1 && parent.NamedChild(1).Equal(n) {
			return TagBindingVector, true
		}
		return "", false

	default:
		return "", false
	}
}

// KeepCount returns K(R): the number of leading named children that
// stay on the form's opening line.
func KeepCount(tag Tag, ok bool) int {
	if !ok {
		return 1
	}
	switch tag {
	case TagCondP:
		return 3
	case TagCond, TagTry, TagDo:
		return 1
	default:
		return 2
	}
}

// IndentColumn returns I(n, R): the column subsequent lines are
// indented to, given col0, the column of n's opening delimiter.
func IndentColumn(tag Tag, ok bool, col0 int) int {
	if ok && tag == TagBindingVector {
		return col0 + 1
	}
	if ok {
		return col0 + 2
	}
	return col0 + 1
}

// PairGrouping reports whether R breaks its remaining children in
// key/value pairs rather than one child per line.
func PairGrouping(tag Tag, ok bool) bool {
	if !ok {
		return false
	}
	switch tag {
	case TagMap, TagBindingVector, TagCond, TagCondP, TagCase, TagCondArrow:
		return true
	default:
		return false
	}
}
