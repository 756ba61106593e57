// Package engine implements the check and fix drivers: CheckSource
// reports violating lines, FixSource repeatedly rewrites the source
// until no fixable violation remains (spec.md §4.9-§4.11).
package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/edit"
	"github.com/basilforge/lispfmt/pkg/ignoremark"
	"github.com/basilforge/lispfmt/pkg/planner"
	"github.com/basilforge/lispfmt/pkg/rules"
	"github.com/basilforge/lispfmt/pkg/syntax"
	"github.com/basilforge/lispfmt/pkg/violations"
)

// MaxIterations bounds the fix loop. Correct inputs converge well
// below this; hitting it returns the best-effort result rather than
// looping forever on a pathological input.
const MaxIterations = 100

// Violation is a single line whose character width exceeds the
// configured limit and is not covered by an ignore marker.
type Violation struct {
	Line   int
	Length int
}

// ParseError signals that the parser could not produce a tree for the
// input at all; this is fatal, not a violation.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvariantError signals a bug in the engine's own logic — a
// candidate the planner should never have offered, or an edit batch
// the applicator should never have rejected — as opposed to anything
// wrong with the input source or configuration.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "internal invariant violated: " + e.Reason
}

// CheckSource scans src for lines exceeding cfg.LineLength, excluding
// lines an ignore marker covers. It never mutates src.
func CheckSource(ctx context.Context, src []byte, cfg config.Config) ([]Violation, error) {
	vs := violations.Scan(src, cfg.LineLength)
	if len(vs) == 0 {
		return nil, nil
	}

	tree, err := syntax.Parse(ctx, src)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	ranges := ignoremark.Collect(tree.RootNode()).LineRanges

	var out []Violation
	for _, v := range vs {
		if lineIgnored(v.Line, ranges) {
			continue
		}
		out = append(out, Violation{Line: v.Line, Length: v.Length})
	}
	return out, nil
}

func lineIgnored(line int, ranges []ignoremark.LineRange) bool {
	for _, r := range ranges {
		if line >= r.Start && line <= r.End {
			return true
		}
	}
	return false
}

// FixSource repeatedly locates the first remaining violation, plans a
// break on the outermost breakable form covering it, and applies the
// resulting edit, until no violations remain, no candidate for the
// current violation can make progress, or MaxIterations is reached.
func FixSource(ctx context.Context, src []byte, cfg config.Config) ([]byte, error) {
	s := src

	for i := 0; i < MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		vs := violations.Scan(s, cfg.LineLength)
		if len(vs) == 0 {
			return s, nil
		}

		tree, err := syntax.Parse(ctx, s)
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		root := tree.RootNode()
		ignoredLines := ignoremark.Collect(root).LineRanges

		target, found := firstUnignoredViolation(vs, ignoredLines)
		if !found {
			return s, nil
		}

		ignoredBytes := ignoremark.Collect(root).ByteRanges
		candidates := planner.Candidates(root, target, ignoredBytes)

		next, progressed, err := tryCandidates(s, candidates, cfg.Indents)
		if err != nil {
			return nil, &InvariantError{Reason: err.Error()}
		}
		if !progressed {
			return s, nil
		}
		s = next
	}

	return s, nil
}

func firstUnignoredViolation(vs []violations.Violation, ignored []ignoremark.LineRange) (int, bool) {
	for _, v := range vs {
		if !lineIgnored(v.Line, ignored) {
			return v.Line, true
		}
	}
	return 0, false
}

func tryCandidates(s []byte, candidates []*syntax.Node, indents map[string]rules.Tag) ([]byte, bool, error) {
	for _, cand := range candidates {
		edits, err := planner.Plan(cand, indents)
		if err != nil {
			return nil, false, err
		}
		if len(edits) == 0 {
			continue
		}

		next, err := edit.Apply(s, edits)
		if err != nil {
			return nil, false, err
		}
		if !bytes.Equal(next, s) {
			return next, true, nil
		}
	}
	return s, false, nil
}
