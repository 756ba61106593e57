package configloader

import (
	"github.com/basilforge/lispfmt/pkg/config"
	"github.com/basilforge/lispfmt/pkg/rules"
)

// Merge combines two configurations, with override taking precedence:
// a positive LineLength in override wins; Indents entries in override
// win per-key, deep-merged over base's; a Backups.Enabled/Suffix in
// override replaces base's wholesale, since backup settings aren't
// meaningfully mergeable per-field.
func Merge(base, override config.Config) config.Config {
	out := base

	if override.LineLength > 0 {
		out.LineLength = override.LineLength
	}

	if len(override.Indents) > 0 {
		merged := make(map[string]rules.Tag, len(out.Indents)+len(override.Indents))
		for k, v := range out.Indents {
			merged[k] = v
		}
		for k, v := range override.Indents {
			merged[k] = v
		}
		out.Indents = merged
	}

	if override.Backups != (config.BackupsConfig{}) {
		out.Backups = override.Backups
	}

	return out
}
