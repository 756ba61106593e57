package syntax

// Kind is a tree-sitter-clojure node type name.
type Kind string

// Breakable node kinds: forms whose named children can be spread across
// multiple lines by the planner (spec.md §3, Glossary).
const (
	KindList               Kind = "list_lit"
	KindVector             Kind = "vec_lit"
	KindMap                Kind = "map_lit"
	KindSet                Kind = "set_lit"
	KindAnonFn             Kind = "anon_fn_lit"
	KindReaderCond         Kind = "reader_cond_lit"
	KindReaderCondSplicing Kind = "reader_cond_splicing_lit"
)

// Atomic node kinds: leaf tokens that are never broken internally.
const (
	KindSymbol  Kind = "sym_lit"
	KindKeyword Kind = "kwd_lit"
	KindString  Kind = "str_lit"
	KindNumber  Kind = "num_lit"
	KindChar    Kind = "char_lit"
	KindRegex   Kind = "regex_lit"
	KindBool    Kind = "bool_lit"
	KindNil     Kind = "nil_lit"
)

// Structural/opaque node kinds.
const (
	KindDiscard Kind = "discard"
	KindComment Kind = "comment"
	KindError   Kind = "ERROR"
)

var breakableKinds = map[Kind]bool{
	KindList:              true,
	KindVector:             true,
	KindMap:                true,
	KindSet:                true,
	KindAnonFn:             true,
	KindReaderCond:         true,
	KindReaderCondSplicing: true,
}

// Breakable reports whether nodes of this kind may have their named
// children spread across lines by the planner.
func (k Kind) Breakable() bool {
	return breakableKinds[k]
}
