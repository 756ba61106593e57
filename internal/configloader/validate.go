package configloader

import (
	"fmt"

	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/rules"
)

// ValidationError describes a single invalid field in a Config.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// validTags is the closed set of indent rule tags a config's indents
// map may name (spec.md §3).
var validTags = map[rules.Tag]bool{
	rules.TagDefn: true, rules.TagDef: true, rules.TagFn: true,
	rules.TagBinding: true, rules.TagIf: true, rules.TagCase: true,
	rules.TagCond: true, rules.TagCondP: true, rules.TagCondArrow: true,
	rules.TagTry: true, rules.TagDo: true, rules.TagMap: true,
	rules.TagBindingVector: true,
}

// Validate checks the shape the engine relies on but never checks
// itself: a positive line length and indent values drawn from the
// closed rule-tag set. Configuration validation errors never reach
// pkg/engine (spec.md §7).
func Validate(cfg config.Config) error {
	if cfg.LineLength <= 0 {
		return &ValidationError{
			Field:   "line_length",
			Value:   cfg.LineLength,
			Message: "must be a positive integer",
		}
	}
	for name, tag := range cfg.Indents {
		if !validTags[tag] {
			return &ValidationError{
				Field:   fmt.Sprintf("indents[%q]", name),
				Value:   tag,
				Message: "not a recognized indent rule tag",
			}
		}
	}
	return nil
}
