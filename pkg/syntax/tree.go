package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/basilforge/lispfmt/internal/grammar"
)

// Tree is a parsed source file.
type Tree struct {
	raw    *sitter.Tree
	source []byte
}

// RootNode returns the tree's root node.
func (t *Tree) RootNode() *Node {
	return wrap(t.raw.RootNode(), t.source)
}

// Parse parses source as Clojure and returns its syntax tree. A
// grammar that fails to load, or a parser that yields no tree at all,
// is a fatal parse error (spec.md §4.1); a tree containing ERROR nodes
// from recovered syntax errors is returned successfully, since the
// planner treats ERROR nodes as opaque atoms rather than failing.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	lang, err := grammar.ClojureLanguage()
	if err != nil {
		return nil, fmt.Errorf("load clojure grammar: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	raw, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	if raw == nil || raw.RootNode() == nil {
		return nil, fmt.Errorf("parser produced no tree")
	}

	return &Tree{raw: raw, source: source}, nil
}
