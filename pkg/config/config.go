// Package config defines the pure-data configuration the reformatting
// engine reads (spec.md §3). Config is never mutated by the engine
// itself; internal/configloader is responsible for discovering,
// merging, and validating it before it reaches pkg/engine.
package config

import "github.com/basilforge/lispfmt/pkg/rules"

// BackupsConfig controls sidecar backups when fix writes files in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Suffix  string `yaml:"suffix"`
}

// Config is the engine's entire configuration surface.
type Config struct {
	// LineLength is the maximum character width before a line is a violation.
	LineLength int `yaml:"line_length"`

	// Indents maps head-symbol names to indent-rule tags, merged over
	// rules.DefaultTable() with these entries winning per-key.
	Indents map[string]rules.Tag `yaml:"indents"`

	// Backups controls sidecar backup files written by `lispfmt fix`.
	Backups BackupsConfig `yaml:"backups"`
}

// DefaultLineLength is used when a config omits line_length.
const DefaultLineLength = 80

// DefaultBackupSuffix is the default value of backups.suffix. The
// sidecar backup path itself always uses fsutil.BackupSuffix; this
// value is carried through the config file but not read by it.
const DefaultBackupSuffix = ".bak"

// Default returns the engine's zero-config defaults.
func Default() Config {
	return Config{
		LineLength: DefaultLineLength,
		Indents:    map[string]rules.Tag{},
		Backups: BackupsConfig{
			Enabled: false,
			Suffix:  DefaultBackupSuffix,
		},
	}
}

// Clone returns a deep copy of cfg.
func (c Config) Clone() Config {
	clone := c
	if c.Indents != nil {
		clone.Indents = make(map[string]rules.Tag, len(c.Indents))
		for k, v := range c.Indents {
			clone.Indents[k] = v
		}
	}
	return clone
}
